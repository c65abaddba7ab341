package domain

// Snapshot is the full persisted shape of a workspace at one point in time.
type Snapshot struct {
	WorkspaceID string            `json:"workspace_id,omitempty"`
	Settings    Settings          `json:"settings"`
	View        ViewConfig        `json:"view"`
	States      []StateDefinition `json:"states"`
}

// WorkspaceDiff represents the changes between two snapshots.
// It is serialized to JSON for partial updates on subscribed clients.
type WorkspaceDiff struct {
	// WorkspaceID is always present to identify the target.
	WorkspaceID string `json:"workspace_id"`

	Fluid   *string   `json:"fluid,omitempty"`
	Units   *string   `json:"units,omitempty"`
	View    *ViewMode `json:"view,omitempty"`
	Plot    *string   `json:"plot,omitempty"`
	Isoline *int      `json:"isoline,omitempty"`

	States *StatesDelta `json:"states,omitempty"`
}

// StatesDelta describes a change of the ordered state collection.
// Appends and removals are sent as such; any other change replaces the whole list.
type StatesDelta struct {
	Appended []StateDefinition `json:"appended,omitempty"`
	Removed  []string          `json:"removed,omitempty"`
	Replaced []StateDefinition `json:"replaced,omitempty"`
}

// Diff calculates the difference between oldSnap and newSnap.
// If oldSnap is nil, it returns a diff representing the entire newSnap (initial load).
// It returns nil when nothing changed.
func Diff(oldSnap, newSnap *Snapshot) *WorkspaceDiff {
	if newSnap == nil {
		return nil
	}

	diff := &WorkspaceDiff{WorkspaceID: newSnap.WorkspaceID}

	if oldSnap == nil {
		oldSnap = &Snapshot{}
	}

	if oldSnap.Settings.Fluid != newSnap.Settings.Fluid {
		diff.Fluid = ptr(newSnap.Settings.Fluid)
	}
	if oldSnap.Settings.Units != newSnap.Settings.Units {
		diff.Units = ptr(newSnap.Settings.Units)
	}
	if oldSnap.View.Mode != newSnap.View.Mode {
		diff.View = ptr(newSnap.View.Mode)
	}
	if oldSnap.View.PlotID != newSnap.View.PlotID {
		diff.Plot = ptr(newSnap.View.PlotID)
	}
	if oldSnap.View.IsolineParameter != newSnap.View.IsolineParameter {
		diff.Isoline = ptr(newSnap.View.IsolineParameter)
	}
	diff.States = diffStates(oldSnap.States, newSnap.States)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffStates(old, new []StateDefinition) *StatesDelta {
	if StatesEqual(old, new) {
		return nil
	}

	// Append-only
	if len(new) > len(old) && StatesEqual(old, new[:len(old)]) {
		return &StatesDelta{Appended: CloneStates(new[len(old):])}
	}

	// Removal-only: new must be an ordered subsequence of old.
	if len(new) < len(old) {
		var removed []string
		j := 0
		for _, s := range old {
			if j < len(new) && s == new[j] {
				j++
				continue
			}
			removed = append(removed, s.ID)
		}
		if j == len(new) {
			return &StatesDelta{Removed: removed}
		}
	}

	replaced := CloneStates(new)
	if replaced == nil {
		replaced = []StateDefinition{}
	}
	return &StatesDelta{Replaced: replaced}
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *WorkspaceDiff) IsEmpty() bool {
	return d.Fluid == nil &&
		d.Units == nil &&
		d.View == nil &&
		d.Plot == nil &&
		d.Isoline == nil &&
		d.States == nil
}

func ptr[T any](v T) *T {
	return &v
}
