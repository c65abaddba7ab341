/*
Package observability turns workspace hooks into logs and Prometheus metrics.

Hooks produced here are plain domain.WorkspaceHooks values; Merge composes several of them
so a host can log and count the same events.
*/
package observability
