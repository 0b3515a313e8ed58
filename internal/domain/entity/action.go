package entity

import (
	"errors"
	"fmt"
)

var ErrUnknownAction = errors.New("unknown action")

type Action string

const (
	ActionBreakStart Action = "break-start"
	ActionBreakEnd   Action = "break-end"
	ActionClockIn    Action = "clock-in"
	ActionClockOut   Action = "clock-out"
)

func (a Action) String() string {
	return string(a)
}

// Actions returns every supported action in CLI order.
func Actions() []Action {
	return []Action{ActionBreakStart, ActionBreakEnd, ActionClockIn, ActionClockOut}
}

func ParseAction(name string) (Action, error) {
	for _, a := range Actions() {
		if string(a) == name {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, name)
}
