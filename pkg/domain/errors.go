package domain

import "errors"

// Input validation errors. Recovered locally and shown inline.
var (
	// ErrInvalidNumber is returned when a value is empty, malformed or not finite after normalization.
	ErrInvalidNumber = errors.New("value must be numeric")

	// ErrInvalidCandidate is returned when the property pair of a new state is not acceptable.
	ErrInvalidCandidate = errors.New("invalid state candidate")

	// ErrFluidRequired is returned when a state is added before a fluid is selected.
	ErrFluidRequired = errors.New("fluid is required")

	// ErrInvalidViewMode is returned for view modes outside the closed enum.
	ErrInvalidViewMode = errors.New("invalid view mode")
)

// ErrRejectedInput is returned when the property engine rejects a combination of inputs.
var ErrRejectedInput = errors.New("property engine rejected the inputs")

// ErrUnknownProperty is returned for property names outside the catalogue.
var ErrUnknownProperty = errors.New("unknown property")

// ErrUnknownFluid is returned when the engine does not know the requested fluid.
var ErrUnknownFluid = errors.New("unknown fluid")

// ErrUnknownPlot is returned for chart ids outside the plot catalogue.
var ErrUnknownPlot = errors.New("unknown plot")

// ErrEngineUnavailable is returned when the property engine is not loaded or has crashed.
var ErrEngineUnavailable = errors.New("property engine unavailable")

// ErrWorkspaceNotFound is returned when a workspace ID cannot be found in the store.
var ErrWorkspaceNotFound = errors.New("workspace not found")

// ErrPresetNotFound is returned when a preset ID cannot be found.
var ErrPresetNotFound = errors.New("preset not found")

// User facing messages, matching the inline banners of the workspace.
const (
	MsgSelectFluid     = "Select a fluid first in settings."
	MsgValuesNumeric   = "Both values must be numeric."
	MsgInvalidPair     = "Choose two different input properties."
	MsgRejected        = "The property engine rejected these inputs. Try different properties or values."
	MsgUnavailable     = "Property engine is not available yet."
	MsgStateNotNumeric = "Values must be numeric."
	MsgStateFailed     = "Unable to evaluate this state."
)

// UserMessage maps an error to the message shown to the user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrFluidRequired):
		return MsgSelectFluid
	case errors.Is(err, ErrInvalidNumber):
		return MsgValuesNumeric
	case errors.Is(err, ErrInvalidCandidate), errors.Is(err, ErrUnknownProperty):
		return MsgInvalidPair
	case errors.Is(err, ErrEngineUnavailable):
		return MsgUnavailable
	case errors.Is(err, ErrRejectedInput):
		return MsgRejected
	}
	return err.Error()
}
