/*
Package workspace implements the Workspace Controller.

The controller owns the ordered collection of tracked states, the view configuration and
the selected fluid/units. It keeps them synchronized with a persisted query string through
two independent reactions:

  - Outbound (Synchronize): memory is projected onto a query string, which is written
    through the QueryWriter only when it differs from the last persisted one.
  - Inbound (ApplyExternal): an externally changed query replaces memory only where the
    decoded values differ from what is already held.

Both directions are guarded by equality checks, so a write never triggers another write.

A Controller is not safe for concurrent use. Hosts serving several callers serialize
access per workspace (see package session).
*/
package workspace
