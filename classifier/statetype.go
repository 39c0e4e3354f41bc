package classifier

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// StateType is the category of a pile size from the point of view of the
// player about to move.
type StateType int

const (
	Win        StateType = iota // The threshold is already met
	WinIn1                      // Some move reaches Win
	LoseIn1                     // Every move hands the opponent a WinIn1
	WinIn2                      // Some move reaches LoseIn1
	LoseIn2                     // Every move reaches WinIn1 or WinIn2
	Unresolved                  // Needs more than two plies, or sits on a cycle
)

// StateTypes lists every category in rule-table order.
var StateTypes = []StateType{Win, WinIn1, LoseIn1, WinIn2, LoseIn2, Unresolved}

var names = []string{"Win", "WinIn1", "LoseIn1", "WinIn2", "LoseIn2", "Unresolved"}

func (t StateType) String() string {
	if t < Win || t > Unresolved {
		return fmt.Sprintf("StateType(%d)", int(t))
	}
	return names[t]
}

func ParseStateType(name string) (StateType, error) {
	i := slices.Index(names, name)
	if i < 0 {
		return Unresolved, fmt.Errorf("unknown state type %q", name)
	}
	return StateType(i), nil
}

// decide applies the rule table to the types of a size's successors. The
// first matching rule wins.
func decide(successors []StateType) StateType {
	switch {
	case anyOf(successors, Win):
		return WinIn1
	case allOf(successors, WinIn1):
		return LoseIn1
	case anyOf(successors, LoseIn1):
		return WinIn2
	case allOf(successors, WinIn1, WinIn2):
		return LoseIn2
	default:
		return Unresolved
	}
}

func anyOf(types []StateType, target StateType) bool {
	return slices.Contains(types, target)
}

func allOf(types []StateType, allowed ...StateType) bool {
	for _, t := range types {
		if !slices.Contains(allowed, t) {
			return false
		}
	}
	return true
}
