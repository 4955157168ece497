package router

import "github.com/BrandonKowalski/cardstack/pkg/cardstack/stack"

// StackEntry is the history record of one route in the navigation state.
// Resume holds whatever the screen saved to restore itself when it is
// focused again (scroll position, selection).
type StackEntry struct {
	Route  *stack.Route
	Resume any
}

// Stack mirrors the routes of the navigation state, bottom first, and keeps
// their resume state.
type Stack struct {
	entries []StackEntry
}

// NewStack creates a new empty navigation stack.
func NewStack() *Stack {
	return &Stack{
		entries: make([]StackEntry, 0),
	}
}

// Push adds a new entry to the stack.
func (s *Stack) Push(route *stack.Route, resume any) {
	s.entries = append(s.entries, StackEntry{
		Route:  route,
		Resume: resume,
	})
}

// Pop removes and returns the top entry from the stack.
// Returns nil if the stack is empty.
func (s *Stack) Pop() *StackEntry {
	if len(s.entries) == 0 {
		return nil
	}
	entry := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return &entry
}

// Peek returns the top entry without removing it.
// Returns nil if the stack is empty.
func (s *Stack) Peek() *StackEntry {
	if len(s.entries) == 0 {
		return nil
	}
	return &s.entries[len(s.entries)-1]
}

// Find returns the entry of the route with the given key, or nil.
func (s *Stack) Find(key string) *StackEntry {
	for i := range s.entries {
		if s.entries[i].Route.Key == key {
			return &s.entries[i]
		}
	}
	return nil
}

// IsEmpty returns true if the stack has no entries.
func (s *Stack) IsEmpty() bool {
	return len(s.entries) == 0
}

// Len returns the number of entries in the stack.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Clear removes all entries from the stack.
func (s *Stack) Clear() {
	s.entries = s.entries[:0]
}
