package runner

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/vectorwriter/pkg/logger"
	"github.com/dmitrymomot/vectorwriter/pkg/statemachine"
	"github.com/dmitrymomot/vectorwriter/pkg/vectordb"
)

// Run lifecycle states.
const (
	StateValidating     = statemachine.StringState("validating")
	StateEnsuringTarget = statemachine.StringState("ensuring_target")
	StateBuilding       = statemachine.StringState("building")
	StateUpserting      = statemachine.StringState("upserting")
	StateSummarizing    = statemachine.StringState("summarizing")
	StateSummarized     = statemachine.StringState("summarized")
	StateFailed         = statemachine.StringState("failed")
)

// Run lifecycle events.
const (
	EventValidated   = statemachine.StringEvent("validated")
	EventTargetReady = statemachine.StringEvent("target_ready")
	EventBuilt       = statemachine.StringEvent("built")
	EventUpserted    = statemachine.StringEvent("upserted")
	EventSummarized  = statemachine.StringEvent("summarized")
	EventFail        = statemachine.StringEvent("fail")
)

// stageEvents maps writer stages to the lifecycle events they complete.
var stageEvents = map[vectordb.Stage]statemachine.Event{
	vectordb.StageTargetReady: EventTargetReady,
	vectordb.StageBuilt:       EventBuilt,
	vectordb.StageUpserted:    EventUpserted,
}

func newLifecycle(log *slog.Logger, observers ...statemachine.Observer) *statemachine.Machine {
	opts := []statemachine.Option{
		statemachine.WithTransitions(
			statemachine.Transition{From: StateValidating, To: StateEnsuringTarget, Event: EventValidated},
			statemachine.Transition{From: StateEnsuringTarget, To: StateBuilding, Event: EventTargetReady},
			statemachine.Transition{From: StateBuilding, To: StateUpserting, Event: EventBuilt},
			statemachine.Transition{From: StateUpserting, To: StateSummarizing, Event: EventUpserted},
			statemachine.Transition{From: StateSummarizing, To: StateSummarized, Event: EventSummarized},
			statemachine.Transition{From: StateValidating, To: StateFailed, Event: EventFail},
			statemachine.Transition{From: StateEnsuringTarget, To: StateFailed, Event: EventFail},
			statemachine.Transition{From: StateBuilding, To: StateFailed, Event: EventFail},
			statemachine.Transition{From: StateUpserting, To: StateFailed, Event: EventFail},
			statemachine.Transition{From: StateSummarizing, To: StateFailed, Event: EventFail},
		),
		statemachine.WithFinalStates(StateSummarized, StateFailed),
		statemachine.WithObserver(func(ctx context.Context, from, to statemachine.State, event statemachine.Event) {
			log.DebugContext(ctx, "run state changed",
				slog.String("from", from.Name()),
				slog.String("to", to.Name()),
				slog.String("event", event.Name()),
			)
		}),
	}
	for _, obs := range observers {
		opts = append(opts, statemachine.WithObserver(obs))
	}
	return statemachine.MustNew(StateValidating, opts...)
}

// advance fires event and logs transitions the table does not allow.
func advance(ctx context.Context, sm *statemachine.Machine, log *slog.Logger, event statemachine.Event) {
	if err := sm.Fire(ctx, event); err != nil {
		log.ErrorContext(ctx, "invalid run state transition",
			slog.String("state", sm.Current().Name()),
			slog.String("event", event.Name()),
			logger.Error(err),
		)
	}
}
