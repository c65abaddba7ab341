package middleware

import "github.com/aretw0/thermoprops/pkg/ports"

// Middleware allows wrapping a QueryStore to add behavior.
type Middleware func(ports.QueryStore) ports.QueryStore

// Chain applies middlewares so that the first one is the outermost.
func Chain(store ports.QueryStore, mws ...Middleware) ports.QueryStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
