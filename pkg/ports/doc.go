/*
Package ports defines the driven ports (interfaces) of the thermoprops workspace.

These interfaces decouple the workspace logic from external implementations, allowing
the controller to work with various property engines, storage backends and preset sources.

# Key Interfaces

  - PropertyEngine: Evaluates thermodynamic properties of a fluid (WASM CoolProp, ideal gas).
  - PlotEngine: Describes chart types and builds isoline data for a fluid.
  - QueryWriter: Receives the workspace query when the in-memory state diverges from it.
  - QueryStore: Persists workspace queries by id.
  - PresetLoader: Reads preset workspaces (e.g., from Loam or Memory).
  - DistributedLocker: Provides distributed locking for concurrent workspace access.
*/
package ports
