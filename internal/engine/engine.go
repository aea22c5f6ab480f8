// Package engine orchestrates one evaluation run: unit scaling, footprint
// building, furnishing extraction, spatial assignment, aggregation and rule
// evaluation. A run is fully scoped to its Run value; the engine holds no
// per-model state and is safe for concurrent Evaluate calls on independent
// models.
package engine

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/edubim/schoolcheck/internal/aggregate"
	"github.com/edubim/schoolcheck/internal/assign"
	"github.com/edubim/schoolcheck/internal/conf"
	"github.com/edubim/schoolcheck/internal/footprint"
	"github.com/edubim/schoolcheck/internal/label"
	"github.com/edubim/schoolcheck/internal/model"
	"github.com/edubim/schoolcheck/internal/observability"
	"github.com/edubim/schoolcheck/internal/placement"
	"github.com/edubim/schoolcheck/internal/rules"
	"github.com/edubim/schoolcheck/internal/units"
)

// Engine runs evaluations against building models.
type Engine struct {
	settings *conf.Settings
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the run logger. Nil silences the engine.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithMetrics attaches metrics collection to every run.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// New creates an engine for the given validated settings.
func New(settings *conf.Settings, opts ...Option) *Engine {
	e := &Engine{settings: settings}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run is the result of one evaluation: every intermediate the pipeline
// produced, plus the check results. Useful both for reporting and for the
// room/furniture inspection commands.
type Run struct {
	ID          uuid.UUID
	SchoolType  rules.SchoolType
	Scale       units.Scale
	Rooms       []*footprint.Footprint // in assignment scan order
	Furnishings []model.FurnishingPoint
	Furniture   aggregate.FurnitureMap
	Occupants   int // occupant count the rules saw
	Results     []rules.Result
}

// Canonical re-exports label canonicalization for engine callers.
func Canonical(s string) string { return label.Canonical(s) }

// Inspect runs the pipeline up to aggregation: unit scaling, footprints,
// furnishing extraction and spatial assignment, but no rules. The inspection
// commands read the intermediates directly.
func (e *Engine) Inspect(ctx context.Context, m model.Model) (*Run, error) {
	run := &Run{
		ID:         uuid.New(),
		SchoolType: rules.SchoolType(e.settings.Check.SchoolType),
	}
	logger := e.runLogger(run)

	run.Scale = units.Resolve(m, logger)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stageStart := time.Now()
	spaceCount := len(m.EntitiesByKind(model.KindSpace))
	run.Rooms = assign.OrderRooms(e.buildFootprints(ctx, m, logger))
	e.recordStage("footprints", stageStart)
	if e.metrics != nil {
		for n := spaceCount - len(run.Rooms); n > 0; n-- {
			e.metrics.Engine.RecordRoomSkipped()
		}
	}

	stageStart = time.Now()
	run.Furnishings = ExtractFurnishings(m)
	assign.Assign(run.Rooms, run.Furnishings, e.settings.Check.ZTolerance)
	e.recordStage("assignment", stageStart)

	run.Furniture = aggregate.BuildFurnitureMap(run.Furnishings)

	run.Occupants = e.settings.Check.Occupants
	if run.Occupants == 0 {
		run.Occupants = run.Furniture.ContainsCount(e.settings.Ruleset.OccupantPhrase)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return run, nil
}

// Evaluate runs the full pipeline over the model and returns the completed
// run. The only error source is rule evaluation over an unvalidated ruleset;
// missing model data never fails, it shows up as NO_SOURCE results.
func (e *Engine) Evaluate(ctx context.Context, m model.Model) (*Run, error) {
	started := time.Now()
	run, err := e.Inspect(ctx, m)
	if err != nil {
		return nil, err
	}
	logger := e.runLogger(run)

	stageStart := time.Now()
	input := rules.Input{
		SchoolType:  run.SchoolType,
		Occupants:   run.Occupants,
		AreaByLabel: aggregate.AreaByLabel(run.Rooms, run.Scale.Area),
		RoomCount:   aggregate.RoomCountByLabel(run.Rooms),
		SeatCount:   run.Furniture.ContainsCount,
		RoomOccupancy: func(roomLabel, seatPhrase string) []aggregate.Occupancy {
			return aggregate.RoomOccupancyMatching(run.Rooms, run.Furnishings, roomLabel, seatPhrase)
		},
	}
	results, err := e.settings.Ruleset.Evaluate(input)
	e.recordStage("evaluation", stageStart)
	if err != nil {
		e.recordRun("error", started)
		return nil, err
	}
	run.Results = results

	e.recordRunMetrics(run)
	e.recordRun("success", started)
	logger.Info("evaluation complete",
		"rooms", len(run.Rooms),
		"furnishings", len(run.Furnishings),
		"occupants", run.Occupants,
		"results", len(run.Results),
		"elapsed", time.Since(started))
	return run, nil
}

// BuildFootprints builds and orders the room footprints of the model without
// running any rules. Used by the room inspection command.
func (e *Engine) BuildFootprints(ctx context.Context, m model.Model) []*footprint.Footprint {
	return assign.OrderRooms(e.buildFootprints(ctx, m, e.runLogger(nil)))
}

// buildFootprints builds footprints for every space in parallel. Result
// order follows the model's space order regardless of worker scheduling.
func (e *Engine) buildFootprints(ctx context.Context, m model.Model, logger *slog.Logger) []*footprint.Footprint {
	spaces := m.EntitiesByKind(model.KindSpace)
	built := make([]*footprint.Footprint, len(spaces))

	workers := e.settings.Check.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(spaces) {
		workers = len(spaces)
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				if fp, ok := footprint.Build(m, spaces[i], logger); ok {
					built[i] = fp
				}
			}
		}()
	}
feed:
	for i := range spaces {
		select {
		case indexes <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(indexes)
	wg.Wait()

	rooms := make([]*footprint.Footprint, 0, len(built))
	for _, fp := range built {
		if fp != nil {
			rooms = append(rooms, fp)
		}
	}
	return rooms
}

// ExtractFurnishings resolves every furnishing entity into its labels and
// world location, in model order. Broken placements yield unplaced points
// that still count in label aggregates.
func ExtractFurnishings(m model.Model) []model.FurnishingPoint {
	entities := m.EntitiesByKind(model.KindFurnishing)
	points := make([]model.FurnishingPoint, 0, len(entities))
	for _, e := range entities {
		p := model.FurnishingPoint{
			EntityID:   e.ID(),
			Name:       attrOrEmpty(e, model.AttrName),
			ObjectType: attrOrEmpty(e, model.AttrObjectType),
			TypeName:   model.TypeName(e),
		}
		if world, ok := placement.WorldPoint(e); ok {
			p.X, p.Y, p.Z = world.X, world.Y, world.Z
			p.Placed = true
		}
		points = append(points, p)
	}
	return points
}

func attrOrEmpty(e model.Entity, name string) string {
	if v, ok := e.Attr(name); ok {
		return v
	}
	return ""
}

func (e *Engine) runLogger(run *Run) *slog.Logger {
	logger := e.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if run != nil {
		logger = logger.With("run_id", run.ID.String())
	}
	return logger
}

func (e *Engine) recordStage(stage string, start time.Time) {
	if e.metrics != nil {
		e.metrics.Engine.RecordStageDuration(stage, time.Since(start).Seconds())
	}
}

func (e *Engine) recordRun(status string, start time.Time) {
	if e.metrics != nil {
		e.metrics.Engine.RecordStageDuration("total", time.Since(start).Seconds())
		e.metrics.Engine.RecordRun(status)
	}
}

func (e *Engine) recordRunMetrics(run *Run) {
	if e.metrics == nil {
		return
	}
	assigned := 0
	for _, room := range run.Rooms {
		e.metrics.Engine.RecordFootprintBuilt()
		if room.UsedHull {
			e.metrics.Engine.RecordFootprintFallback()
		}
		assigned += len(room.Furnishings)
	}
	e.metrics.Engine.RecordAssignments(assigned, len(run.Furnishings)-assigned)
	for i := range run.Results {
		e.metrics.Engine.RecordCheckResult(string(run.Results[i].Status))
	}
}
