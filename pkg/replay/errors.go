package replay

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidScript   = errors.New("invalid script")
	ErrUnknownRelation = errors.New("unknown relation")
)

// ScriptError describes a failure tied to one step of a script.
type ScriptError struct {
	Step  int    // 1-based step number, 0 when not tied to a step
	Op    string // step operation
	Cause error
}

func (e *ScriptError) Error() string {
	if e.Step == 0 {
		return fmt.Sprintf("script: %v", e.Cause)
	}
	return fmt.Sprintf("step %d (%s): %v", e.Step, e.Op, e.Cause)
}

func (e *ScriptError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches the cause.
func (e *ScriptError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func stepError(step int, op string, cause error) error {
	return &ScriptError{Step: step, Op: op, Cause: cause}
}

func unknownRelation(step int, op, name string) error {
	return stepError(step, op, fmt.Errorf("%w %q", ErrUnknownRelation, name))
}
