package domain

import "fmt"

// Stage captures where the order form is in its submit/confirm cycle.
type Stage string

const (
	StageEditing    Stage = "editing"
	StageConfirming Stage = "confirming"
	// StageClosed means the confirmation view was dismissed after confirming.
	// The form remains editable and a new submission supersedes the last one.
	StageClosed Stage = "closed"
)

// Lifecycle is the two-state editing/confirming machine of the order form.
type Lifecycle struct {
	stage Stage
}

func NewLifecycle() Lifecycle {
	return Lifecycle{stage: StageEditing}
}

func (l Lifecycle) Stage() Stage {
	if l.stage == "" {
		return StageEditing
	}
	return l.stage
}

// CanEdit reports whether cart and form changes are currently accepted.
func (l Lifecycle) CanEdit() bool {
	return l.Stage() != StageConfirming
}

// Submit moves an accepted submission into confirmation.
func (l Lifecycle) Submit() (Lifecycle, error) {
	if !l.CanEdit() {
		return l, ErrAwaitingConfirmation
	}
	return Lifecycle{stage: StageConfirming}, nil
}

// Confirm closes the confirmation view.
func (l Lifecycle) Confirm() (Lifecycle, error) {
	if l.Stage() != StageConfirming {
		return l, fmt.Errorf("%w: cannot confirm from %s", ErrInvalidTransition, l.Stage())
	}
	return Lifecycle{stage: StageClosed}, nil
}

// Cancel returns from confirmation to editing.
func (l Lifecycle) Cancel() (Lifecycle, error) {
	if l.Stage() != StageConfirming {
		return l, fmt.Errorf("%w: cannot cancel from %s", ErrInvalidTransition, l.Stage())
	}
	return Lifecycle{stage: StageEditing}, nil
}
