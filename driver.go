package robotforth

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jcorbin/robotforth/internal/panicerr"
)

// Result reports how one run ended; Err is nil after a normal completion.
type Result struct {
	ID      uuid.UUID
	Program string
	Err     error
}

// Start runs the instance's entry point on a new goroutine.
//
// When the run ends the listener's Interrupted method is called with any
// fault, its Finished method is always called after that, and one Result is
// sent on the returned channel before it is closed. Panics raised by the
// listener or source during the run are returned as faults.
//
// There is no cancellation: ctx only carries the parent trace span.
func Start(ctx context.Context, inst *Instance, listener Listener, source DataSource) <-chan Result {
	res := Result{ID: uuid.New(), Program: inst.prog.Name}
	resch := make(chan Result, 1)
	go func() {
		defer close(resch)
		res.Err = inst.runTraced(ctx, res.ID, listener, source)
		if listener != nil {
			if res.Err != nil {
				notify(inst, res.ID, "interrupted", func() { listener.Interrupted(res.Err) })
			}
			notify(inst, res.ID, "finished", listener.Finished)
		}
		resch <- res
	}()
	return resch
}

// Run is a synchronous Start, returning the run's fault if any.
func Run(ctx context.Context, inst *Instance, listener Listener, source DataSource) error {
	return (<-Start(ctx, inst, listener, source)).Err
}

func (inst *Instance) runTraced(ctx context.Context, id uuid.UUID, listener Listener, source DataSource) error {
	_, span := inst.prog.env.tracer.Start(ctx, "robotforth.run", trace.WithAttributes(
		attribute.String("robotforth.program", inst.prog.Name),
		attribute.String("robotforth.run_id", id.String()),
	))
	defer span.End()

	err := panicerr.Recover(inst.prog.Name, func() error {
		return inst.run(listener, source, id.String()+" ")
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func notify(inst *Instance, id uuid.UUID, what string, f func()) {
	if err := panicerr.Call(inst.prog.Name+" "+what, f); err != nil {
		inst.prog.env.logf("#", "%v %v listener: %+v", id, what, err)
	}
}
