// Package statemachine is a small finite state machine for tracking the
// stages of a long running job.
//
// A Machine is built from a transition table and a set of final states. Fire
// moves it along the table, records every visited state and notifies
// observers. Final states accept no events.
//
//	const (
//	    Loading = statemachine.StringState("loading")
//	    Writing = statemachine.StringState("writing")
//	    Done    = statemachine.StringState("done")
//	    Failed  = statemachine.StringState("failed")
//	)
//
//	m := statemachine.MustNew(Loading,
//	    statemachine.WithTransitions(
//	        statemachine.Transition{From: Loading, To: Writing, Event: statemachine.StringEvent("loaded")},
//	        statemachine.Transition{From: Writing, To: Done, Event: statemachine.StringEvent("written")},
//	        statemachine.Transition{From: Loading, To: Failed, Event: statemachine.StringEvent("fail")},
//	        statemachine.Transition{From: Writing, To: Failed, Event: statemachine.StringEvent("fail")},
//	    ),
//	    statemachine.WithFinalStates(Done, Failed),
//	)
//	err := m.Fire(ctx, statemachine.StringEvent("loaded"))
//
// Fire returns a *TransitionError matching ErrNoTransition when the current
// state has no transition for the event. A Machine is safe for concurrent use;
// observers run after the state changed, outside the lock.
package statemachine
