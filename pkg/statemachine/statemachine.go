package statemachine

import (
	"context"
	"fmt"
	"sync"
)

type State interface {
	Name() string
}

type Event interface {
	Name() string
}

// Observer runs after every applied transition.
type Observer func(ctx context.Context, from, to State, event Event)

// Transition moves the machine From a state To another on Event.
type Transition struct {
	From  State
	To    State
	Event Event
}

type StringState string

func (s StringState) Name() string { return string(s) }

type StringEvent string

func (e StringEvent) Name() string { return string(e) }

// Option configures a Machine during New.
type Option func(*Machine) error

// WithTransitions adds transitions. A later transition for the same state and
// event replaces the earlier one.
func WithTransitions(transitions ...Transition) Option {
	return func(m *Machine) error {
		for i, t := range transitions {
			if t.From == nil || t.To == nil || t.Event == nil {
				return fmt.Errorf("%w: transition %d has a nil field", ErrInvalidDefinition, i)
			}
			if m.table[t.From.Name()] == nil {
				m.table[t.From.Name()] = make(map[string]State)
			}
			m.table[t.From.Name()][t.Event.Name()] = t.To
		}
		return nil
	}
}

// WithFinalStates marks states that accept no events. A final state must not
// have outgoing transitions.
func WithFinalStates(states ...State) Option {
	return func(m *Machine) error {
		for _, s := range states {
			if s == nil {
				return fmt.Errorf("%w: nil final state", ErrInvalidDefinition)
			}
			m.final[s.Name()] = true
		}
		return nil
	}
}

func WithObserver(obs Observer) Option {
	return func(m *Machine) error {
		if obs != nil {
			m.observers = append(m.observers, obs)
		}
		return nil
	}
}

// Machine is an in-memory state machine.
type Machine struct {
	mu        sync.RWMutex
	current   State
	history   []State
	table     map[string]map[string]State
	final     map[string]bool
	observers []Observer
}

// New builds a Machine starting in initial.
func New(initial State, opts ...Option) (*Machine, error) {
	if initial == nil {
		return nil, fmt.Errorf("%w: nil initial state", ErrInvalidDefinition)
	}
	m := &Machine{
		current: initial,
		history: []State{initial},
		table:   make(map[string]map[string]State),
		final:   make(map[string]bool),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	for name := range m.final {
		if len(m.table[name]) > 0 {
			return nil, fmt.Errorf("%w: final state %q has outgoing transitions", ErrInvalidDefinition, name)
		}
	}
	return m, nil
}

// MustNew is New that panics on an invalid definition.
func MustNew(initial State, opts ...Option) *Machine {
	m, err := New(initial, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Final reports whether the current state is final.
func (m *Machine) Final() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.final[m.current.Name()]
}

// History returns every visited state, starting with the initial one.
func (m *Machine) History() []State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]State, len(m.history))
	copy(out, m.history)
	return out
}

// Can reports whether event would be accepted in the current state.
func (m *Machine) Can(event Event) bool {
	if event == nil {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, err := m.next(event)
	return err == nil
}

// Fire applies the transition for event.
func (m *Machine) Fire(ctx context.Context, event Event) error {
	if event == nil {
		return fmt.Errorf("%w: nil event", ErrInvalidDefinition)
	}

	m.mu.Lock()
	from := m.current
	to, err := m.next(event)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	m.current = to
	m.history = append(m.history, to)
	observers := m.observers
	m.mu.Unlock()

	for _, obs := range observers {
		obs(ctx, from, to, event)
	}
	return nil
}

// next must be called with the lock held.
func (m *Machine) next(event Event) (State, error) {
	name := m.current.Name()
	if m.final[name] {
		return nil, &TransitionError{State: name, Event: event.Name(), Final: true}
	}
	to, ok := m.table[name][event.Name()]
	if !ok {
		return nil, &TransitionError{State: name, Event: event.Name()}
	}
	return to, nil
}
