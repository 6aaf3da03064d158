package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"cgen/internal/auxiliary"
	"cgen/internal/codegen"
	"cgen/internal/recipe"
)

// Request configures one pipeline run.
type Request struct {
	Recipes  []*recipe.Recipe
	Jobs     int          // <=0 means GOMAXPROCS
	Progress ProgressSink // optional
	// Skip reports whether a recipe's outputs are already up to date.
	// Skipped recipes produce a Result with Skipped set and no session.
	Skip func(*recipe.Recipe) bool
}

// Result is the outcome of one recipe.
type Result struct {
	Recipe    string
	Name      string
	Artifacts []string
	Skipped   bool
}

// Run executes every recipe in its own engine session with bounded
// parallelism. The first failing session cancels the rest; results for
// completed sessions keep their recipe order.
func Run(ctx context.Context, req Request) ([]Result, error) {
	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if len(req.Recipes) == 0 {
		return nil, nil
	}

	for _, rcp := range req.Recipes {
		emit(req.Progress, Event{Recipe: rcp.Path, Stage: StageConfigure, Status: StatusQueued})
	}

	results := make([]Result, len(req.Recipes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(req.Recipes)))

	for i, rcp := range req.Recipes {
		g.Go(func(i int, rcp *recipe.Recipe) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				if req.Skip != nil && req.Skip(rcp) {
					emit(req.Progress, Event{Recipe: rcp.Path, Stage: StageWrite, Status: StatusSkipped})
					results[i] = Result{Recipe: rcp.Path, Name: rcp.Output.Name, Skipped: true}
					return nil
				}

				res, err := runOne(rcp, req.Progress)
				if err != nil {
					return err
				}
				results[i] = res
				return nil
			}
		}(i, rcp))
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runOne(rcp *recipe.Recipe, sink ProgressSink) (Result, error) {
	start := time.Now()
	emit(sink, Event{Recipe: rcp.Path, Stage: StageConfigure, Status: StatusWorking})

	gen, err := Configure(rcp)
	if err != nil {
		emit(sink, Event{Recipe: rcp.Path, Stage: StageConfigure, Status: StatusError, Err: err})
		return Result{}, err
	}
	emit(sink, Event{Recipe: rcp.Path, Stage: StageConfigure, Status: StatusDone, Elapsed: time.Since(start)})

	stage := time.Now()
	emit(sink, Event{Recipe: rcp.Path, Stage: StageGenerate, Status: StatusWorking})
	if err := Apply(gen, rcp); err != nil {
		emit(sink, Event{Recipe: rcp.Path, Stage: StageGenerate, Status: StatusError, Err: err})
		return Result{}, err
	}
	emit(sink, Event{Recipe: rcp.Path, Stage: StageGenerate, Status: StatusDone, Elapsed: time.Since(stage)})

	stage = time.Now()
	emit(sink, Event{Recipe: rcp.Path, Stage: StageRender, Status: StatusWorking})
	src, err := gen.Render()
	if err != nil {
		emit(sink, Event{Recipe: rcp.Path, Stage: StageRender, Status: StatusError, Err: err})
		return Result{}, err
	}
	var hdr string
	if gen.Options().WithHeader {
		if hdr, err = gen.RenderHeader(); err != nil {
			emit(sink, Event{Recipe: rcp.Path, Stage: StageRender, Status: StatusError, Err: err})
			return Result{}, err
		}
	}
	emit(sink, Event{Recipe: rcp.Path, Stage: StageRender, Status: StatusDone, Elapsed: time.Since(stage)})

	stage = time.Now()
	emit(sink, Event{Recipe: rcp.Path, Stage: StageWrite, Status: StatusWorking})
	paths, err := gen.Artifacts(rcp.Output.Prefix)
	if err == nil {
		err = writeArtifacts(paths, src, hdr)
	}
	if err != nil {
		emit(sink, Event{Recipe: rcp.Path, Stage: StageWrite, Status: StatusError, Err: err})
		return Result{}, err
	}
	emit(sink, Event{Recipe: rcp.Path, Stage: StageWrite, Status: StatusDone, Elapsed: time.Since(stage)})

	return Result{Recipe: rcp.Path, Name: gen.BaseName(), Artifacts: paths}, nil
}

// Configure builds a session from the recipe's output name and options.
func Configure(rcp *recipe.Recipe) (*codegen.Generator, error) {
	opts, err := codegen.ParseOptions(rcp.Options)
	if err != nil {
		return nil, err
	}
	return codegen.New(rcp.Output.Name, opts)
}

// Apply feeds the recipe's includes, auxiliary requests and constants
// into the session.
func Apply(gen *codegen.Generator, rcp *recipe.Recipe) error {
	for _, inc := range rcp.Includes {
		gen.AddInclude(inc.Name, inc.Relative, inc.Guard)
	}
	for _, a := range rcp.Auxiliaries {
		kind, err := auxiliary.ParseKind(a.Kind)
		if err != nil {
			return err
		}
		gen.AddAuxiliary(kind, a.Params...)
	}
	for _, c := range rcp.Constants.Int {
		values, err := c.IntValues()
		if err != nil {
			return err
		}
		gen.NamedIntConstant(c.Name, values)
	}
	for _, c := range rcp.Constants.Float {
		gen.NamedConstant(c.Name, c.Values)
	}
	return nil
}

func writeArtifacts(paths []string, src, hdr string) error {
	if dir := filepath.Dir(paths[0]); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(paths[0], []byte(src), 0o644); err != nil {
		return err
	}
	if len(paths) > 1 {
		if err := os.WriteFile(paths[1], []byte(hdr), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func emit(sink ProgressSink, evt Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(evt)
}
