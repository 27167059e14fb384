// ABOUTME: Contract-violation error types for the comparison state machine
// ABOUTME: All are synchronous caller bugs, never transient failures

package engine

import "fmt"

// InvalidStateError reports an action invoked at a level that does not
// support it.
type InvalidStateError struct {
	Op    string
	Level Level
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s not valid at %s level", e.Op, e.Level)
}

// NotReadyError reports a Result call before any terminal action.
type NotReadyError struct{}

func (e *NotReadyError) Error() string {
	return "result not ready: comparison has not reached a terminal action"
}
