package state

// Target identifies the child component that receives keyboard input.
type Target int

// Keyboard targets. TargetList is the zero value and the default.
const (
	TargetList Target = iota
	TargetSearch
)

func (t Target) String() string {
	if t == TargetSearch {
		return "search"
	}
	return "list"
}

// FocusKind is reported by the search field when it gains or loses focus.
type FocusKind int

// Focus transitions.
const (
	FocusGained FocusKind = iota
	FocusLost
)

// NavigationState records which child is the active keyboard target.
// Exactly one target is active at any time.
type NavigationState struct {
	Active Target
}

// ViewState holds UI-related state for the model.
type ViewState struct {
	WindowWidth  int
	WindowHeight int
}
