/*
Package thermoprops tracks thermodynamic states of a fluid in a workspace whose whole
state lives in a URL query string.

A workspace holds the selected fluid and unit system, an ordered list of state
definitions (two independent input properties each) and a view configuration. Every
change is projected onto the query; every query seen from outside is projected back
into memory. Links are therefore shareable and the browser history works as an undo
stack.

# Components

  - pkg/numeric turns locale-formatted decimals ("1.234,5") into canonical strings.
  - pkg/codec packs state definitions into a compact URL-safe token.
  - pkg/workspace is the controller that keeps memory and the query in sync.
  - pkg/ports declares the property engine the controller delegates physics to.

# Usage

	ctx := context.Background()
	ws, err := thermoprops.Open(ctx, "fluid=Nitrogen")
	if err != nil {
		log.Fatal(err)
	}
	if _, err := ws.AddState(ctx, domain.Candidate{
		Property1: "T", Value1: "300",
		Property2: "P", Value2: "101 325",
	}); err != nil {
		log.Fatal(err)
	}
	fmt.Println(ws.Query())

The default engine is an ideal gas model. Use WithEngine to plug in a real equation of
state such as the WebAssembly engine in pkg/adapters/wasm.
*/
package thermoprops
