package moderation

import (
	"fmt"
	"strings"

	"github.com/soldout/backend/internal/video"
)

// Transition is one allowed status change
type Transition struct {
	From video.Status
	To   video.Status
}

func (t Transition) String() string {
	return string(t.From) + "->" + string(t.To)
}

// ParseTransition parses a "FROM->TO" pair
func ParseTransition(s string) (Transition, error) {
	parts := strings.Split(strings.TrimSpace(s), "->")
	if len(parts) != 2 {
		return Transition{}, fmt.Errorf("malformed transition %q", s)
	}
	t := Transition{
		From: video.Status(strings.ToUpper(strings.TrimSpace(parts[0]))),
		To:   video.Status(strings.ToUpper(strings.TrimSpace(parts[1]))),
	}
	if !t.From.Valid() || !t.To.Valid() {
		return Transition{}, fmt.Errorf("unknown status in transition %q", s)
	}
	return t, nil
}

// StateMachine answers whether a status change is permitted
type StateMachine struct {
	allowed map[Transition]bool
}

// NewStateMachine builds a machine from "FROM->TO" strings
func NewStateMachine(specs []string) (*StateMachine, error) {
	m := &StateMachine{allowed: make(map[Transition]bool, len(specs))}
	for _, spec := range specs {
		t, err := ParseTransition(spec)
		if err != nil {
			return nil, err
		}
		m.allowed[t] = true
	}
	return m, nil
}

// CanTransition reports whether from may move to to
func (m *StateMachine) CanTransition(from, to video.Status) bool {
	return m.allowed[Transition{From: from, To: to}]
}

// Transitions lists the allowed transitions
func (m *StateMachine) Transitions() []Transition {
	out := make([]Transition, 0, len(m.allowed))
	for t := range m.allowed {
		out = append(out, t)
	}
	return out
}
