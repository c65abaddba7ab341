/*
Package session serializes access to stored workspaces.

A workspace is a persisted query. Open loads it, rebuilds a workspace.Controller from it,
runs the caller's mutations and lets the controller write the result back, all while holding
a per-workspace lock (and, across replicas, an optional distributed lock). The change is
reported as a domain.WorkspaceDiff so that hosts can stream it to subscribers.
*/
package session
