// Package checker drives resolution over loaded worlds: it walks each
// compilation unit's scope tree, maintaining the unit's receiver stack, and
// resolves every call site against its overload set.
package checker

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/calyx-lang/calyx/pkg/resolver"
	"github.com/calyx-lang/calyx/pkg/types"
	"github.com/calyx-lang/calyx/pkg/world"
)

type Config struct {
	// Jobs bounds how many units are checked concurrently. Zero means
	// GOMAXPROCS.
	Jobs int
}

func (c *Config) Validate(logger *slog.Logger) error {
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must be non-negative, got %d", c.Jobs)
	}

	return nil
}

type Checker struct {
	logger *slog.Logger
	Config Config
}

func New(logger *slog.Logger, config Config) (*Checker, error) {
	err := config.Validate(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to validate checker config: %w", err)
	}

	return &Checker{
		logger: logger,
		Config: config,
	}, nil
}

// Result is the outcome for one call site. Bound is set only when the
// verdict is Resolved.
type Result struct {
	Unit    string
	Call    resolver.CallSite
	Verdict resolver.Verdict
	Bound   *resolver.BoundCall
	Err     error
}

// Check resolves every call site in the world. Units run concurrently, each
// with its own receiver stack; results keep unit order, and call-site order
// within a unit. User-facing resolution errors are accumulated and returned
// alongside the per-call results.
func (c *Checker) Check(ctx context.Context, w *world.World) ([]Result, error) {
	jobs := c.Config.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	r := resolver.New(c.logger, w.Hierarchy)

	unitResults := make([][]Result, len(w.Units))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(w.Units), 1)))

	for i, unit := range w.Units {
		i, unit := i, unit
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			unitResults[i] = c.checkUnit(r, w, unit)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	errs := resolver.NewErrorSet()

	var results []Result
	for _, unit := range unitResults {
		for _, res := range unit {
			if res.Err != nil {
				errs.Add(resolver.FileError{File: res.Call.Site, Err: res.Err})
			}
			results = append(results, res)
		}
	}

	return results, errs.Defer(nil)
}

func (c *Checker) checkUnit(r *resolver.Resolver, w *world.World, unit *world.Unit) []Result {
	c.logger.Debug("checking unit", "unit", unit.Name)

	stack := resolver.NewReceiverStack(unit.Globals...)

	var results []Result
	results = append(results, c.checkCalls(r, w, unit, stack, unit.Calls)...)
	results = append(results, c.checkScopes(r, w, unit, stack, unit.Scopes)...)

	return results
}

func (c *Checker) checkScopes(r *resolver.Resolver, w *world.World, unit *world.Unit, stack *resolver.ReceiverStack, scopes []*world.Scope) []Result {
	var results []Result
	for _, scope := range scopes {
		_ = stack.WithFrame(scope.Context.Type, scope.Context.Value, func() error {
			results = append(results, c.checkCalls(r, w, unit, stack, scope.Calls)...)
			results = append(results, c.checkScopes(r, w, unit, stack, scope.Scopes)...)
			return nil
		})
	}

	return results
}

func (c *Checker) checkCalls(r *resolver.Resolver, w *world.World, unit *world.Unit, stack *resolver.ReceiverStack, calls []world.Call) []Result {
	results := make([]Result, 0, len(calls))
	for _, wc := range calls {
		call := wc.CallSite

		res := Result{
			Unit: unit.Name,
			Call: call,
		}

		if wc.AmbientExplicit {
			pos, ok := ambientPosition(stack, call.Explicit)
			if !ok {
				res.Verdict = resolver.NotApplicable()
				res.Err = fmt.Errorf("explicit receiver %s is not an enclosing context", call.Explicit)
				results = append(results, res)
				continue
			}
			call.ExplicitPos = pos + 1
		}

		set, ok := w.Overloads[call.Name]
		if !ok {
			res.Verdict = resolver.NotApplicable()
			res.Err = fmt.Errorf("no declaration named %s is visible", call.Name)
			results = append(results, res)
			continue
		}

		verdict, err := r.ResolveCall(set, stack, call)
		res.Verdict = verdict
		res.Err = err
		if verdict.Kind == resolver.VerdictResolved {
			res.Bound = resolver.NewBoundCall(verdict.Binding)
		}

		results = append(results, res)
	}

	return results
}

// ambientPosition finds the innermost stack frame holding the given receiver.
func ambientPosition(stack *resolver.ReceiverStack, explicit resolver.ContextFrame) (int, bool) {
	frames := stack.Frames()
	for j := len(frames) - 1; j >= 0; j-- {
		if frames[j].Value == explicit.Value && types.Equal(frames[j].Type, explicit.Type) {
			return j, true
		}
	}

	return 0, false
}
