// Package driver runs the distributed-actor checks over a bound fixture
// and collects per-actor diagnostic bags in a deterministic order.
package driver

import (
	"context"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"dac/internal/decl"
	"dac/internal/declfile"
	"dac/internal/diag"
	"dac/internal/observ"
	"dac/internal/sema"
	"dac/internal/synth"
)

// Options configure one check run.
type Options struct {
	// Jobs caps parallel workers for the function-check phase; 0 = auto.
	Jobs int
	// MaxDiagnostics bounds each actor's diagnostic bag.
	MaxDiagnostics int
	// Probe suppresses every diagnostic and only counts violations.
	Probe bool
	// ExtraModules are treated as loaded in addition to the fixture's
	// own list (manifest defaults).
	ExtraModules []string
	// Timer, when set, records the load/actors/functions phases.
	Timer *observ.Timer
}

func (o *Options) jobs() int {
	if o.Jobs > 0 {
		return o.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

func (o *Options) bagCap() int {
	if o.MaxDiagnostics > 0 {
		return o.MaxDiagnostics
	}
	return 100
}

// ActorResult is the outcome for one distributed-actor declaration.
type ActorResult struct {
	Actor decl.DeclID
	Name  string
	Bag   *diag.Bag
	// Violations counts distributed-function violations, including those
	// found in probe mode.
	Violations int

	// reporter is shared by every phase that touches this actor, so a
	// query re-evaluated in a later phase cannot report into the bag
	// twice.
	reporter diag.Reporter
}

// CheckFixture loads, binds, and checks a fixture file end to end.
func CheckFixture(ctx context.Context, path string, opts Options) (*declfile.World, []ActorResult, error) {
	var world *declfile.World
	load := func() error {
		var err error
		world, err = declfile.Load(path, opts.ExtraModules)
		return err
	}
	var err error
	if opts.Timer != nil {
		err = opts.Timer.Measure("load", path, load)
	} else {
		err = load()
	}
	if err != nil {
		return nil, nil, err
	}
	results, err := CheckWorld(ctx, world, opts)
	return world, results, err
}

// CheckWorld validates every actor declaration of a bound world.
//
// Orchestration (constructor, property, and synthesis steps) runs serially
// because synthesis appends to the shared declaration graph. The
// distributed-function checks that follow are read-only, so they fan out
// one worker per actor, each with its own evaluator shard.
func CheckWorld(ctx context.Context, world *declfile.World, opts Options) ([]ActorResult, error) {
	results := make([]ActorResult, len(world.Actors))
	for i, actor := range world.Actors {
		results[i] = ActorResult{
			Actor: actor,
			Name:  world.Graph.NameOf(actor),
			Bag:   diag.NewBag(opts.bagCap()),
		}
		if opts.Probe {
			results[i].reporter = diag.NopReporter{}
		} else {
			results[i].reporter = diag.NewDedupReporter(diag.BagReporter{Bag: results[i].Bag})
		}
	}

	var actorPhase int
	if opts.Timer != nil {
		actorPhase = opts.Timer.Begin("actors")
	}
	checked := 0
	for i, actor := range world.Actors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c := newActorContext(world, &results[i])
		if !c.IsDistributedActor(actor) {
			continue
		}
		c.CheckDistributedActor(actor)
		checked++
	}
	if opts.Timer != nil {
		opts.Timer.End(actorPhase, pluralActors(checked))
	}

	var fnPhase int
	if opts.Timer != nil {
		fnPhase = opts.Timer.Begin("functions")
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.jobs(), max(len(world.Actors), 1)))
	for i, actor := range world.Actors {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			c := newActorContext(world, &results[i])
			if !c.IsDistributedActor(actor) {
				return nil
			}
			// Fail closed: a declaration whose module check failed gets
			// no function validation either. The shared dedup reporter
			// absorbs the replayed module diagnostic.
			if !c.EnsureModuleLoaded(actor) {
				return nil
			}
			for _, fn := range world.Graph.Funcs(actor) {
				if !c.IsDistributedFunc(fn) {
					continue
				}
				if c.CheckDistributedFunction(fn, !opts.Probe) {
					results[i].Violations++
				}
			}
			return nil
		})
	}
	err := g.Wait()
	if opts.Timer != nil {
		opts.Timer.End(fnPhase, "")
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

// newActorContext builds a per-phase context over the actor's reporter.
// Each context carries its own evaluator shard; the reporter (and its dedup
// state) belongs to the result and outlives the phases.
func newActorContext(world *declfile.World, res *ActorResult) *sema.Context {
	return sema.NewContext(world.Graph, res.reporter, world.Table, synth.NewService(world.Graph))
}

// MergeBags collects every actor's diagnostics into one sorted bag.
func MergeBags(results []ActorResult) *diag.Bag {
	total := 0
	for i := range results {
		total += results[i].Bag.Len()
	}
	merged := diag.NewBag(max(total, 1))
	for i := range results {
		merged.Merge(results[i].Bag)
	}
	merged.Sort()
	return merged
}

func pluralActors(n int) string {
	if n == 1 {
		return "1 actor"
	}
	return strconv.Itoa(n) + " actors"
}
