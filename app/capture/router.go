package capture

import (
	"context"
	"fmt"
)

var _ Invoker = (*Router)(nil)

// Router sends each spec to the invoker registered for its tool and
// everything else to the process invoker.
type Router struct {
	process Invoker
	tools   map[string]Invoker
}

func NewRouter(process Invoker) *Router {
	return &Router{
		process: process,
		tools:   make(map[string]Invoker),
	}
}

func (r *Router) Handle(tool string, invoker Invoker) *Router {
	r.tools[tool] = invoker
	return r
}

func (r *Router) Invoke(ctx context.Context, spec CommandSpec) (Outcome, error) {
	if invoker, ok := r.tools[spec.Tool]; ok {
		return invoker.Invoke(ctx, spec)
	}
	if r.process == nil {
		return Outcome{}, fmt.Errorf("%w: no invoker for tool %q", ErrLaunch, spec.Tool)
	}
	return r.process.Invoke(ctx, spec)
}
