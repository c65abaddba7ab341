/*
Package domain contains the core domain models of a thermoprops workspace.

It defines the tracked thermodynamic states, the view configuration persisted alongside them,
and the derived data (computed states, plot points) built from the property engine. This package
is kept pure and free of I/O, persistence or engine calls.

# Key Entities

  - StateDefinition: A user-pinned state, defined by two independent input properties.
  - ViewConfig: Chart id, isoline parameter and view mode of the workspace.
  - Settings: Selected fluid and unit system.
  - ComputedState: A StateDefinition paired with its computed results, or an error marker.
  - WorkspaceDiff: The changes between two workspace snapshots, streamed to clients.
*/
package domain
