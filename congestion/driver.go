package congestion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oriole-pcb/gridroute/grid"
	"github.com/oriole-pcb/gridroute/model"
	"github.com/oriole-pcb/gridroute/rules"
	"github.com/oriole-pcb/gridroute/search"
)

// Config tunes a Driver run. Zero-value Config gets sane defaults applied
// by Run.
type Config struct {
	MaxIterations               int
	NodeBudgetPerSearch         int
	UseConn8                    bool
	Heuristic                   search.Heuristic
	HistoryInflationStep        float32
	PresentCongestionEscalation float64

	// EffectiveOverride, when set, adjusts each net's resolved
	// EffectiveRules before the first routing round — the router
	// package's strategy-selection hook.
	EffectiveOverride EffectiveOverride

	// Logger receives iteration-boundary and net-completion events. A nil
	// Logger gets slog.Default() in applyDefaults.
	Logger *slog.Logger
}

func (c *Config) applyDefaults() {
	if c.MaxIterations <= 0 {
		c.MaxIterations = 20
	}
	if c.NodeBudgetPerSearch <= 0 {
		c.NodeBudgetPerSearch = 200000
	}
	if c.Heuristic == nil {
		c.Heuristic = search.Default
	}
	if c.HistoryInflationStep <= 0 {
		c.HistoryInflationStep = 1.0
	}
	if c.PresentCongestionEscalation <= 0 {
		c.PresentCongestionEscalation = 1.5
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Driver runs the negotiated-congestion ripup-and-retry loop over a single
// grid.Grid for a board's full net list.
type Driver struct {
	Grid   *grid.Grid
	Global *rules.DesignRules
}

// NewDriver builds a Driver over an already-sized grid and the board's
// global design rules.
func NewDriver(g *grid.Grid, global *rules.DesignRules) *Driver {
	return &Driver{Grid: g, Global: global}
}

type roundOutcome struct {
	routes     []model.Route
	violations []model.RouteError
}

// Run routes every net on board, iterating up to cfg.MaxIterations rounds:
// each round re-derives obstacles from scratch and re-routes every net in
// priority order, then — if any net failed — inflates the history cost of
// the cells actually standing in its way before trying again. Converges
// when a round produces zero violations, or returns the best (lowest
// violation count) round seen once the iteration budget runs out.
func (d *Driver) Run(ctx context.Context, board *model.Board, cfg Config) (*model.Result, error) {
	cfg.applyDefaults()
	if len(board.Nets) == 0 {
		return nil, ErrNoNets
	}
	jobs, err := buildJobs(board, d.Global, cfg.EffectiveOverride)
	if err != nil {
		return nil, err
	}
	order := orderJobs(jobs)
	allPads := board.AllPads()

	start := time.Now()
	var best roundOutcome
	bestViolations := -1
	weightMultiplier := 1.0
	iterations := 0

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		iterations = iter + 1
		if err := ctx.Err(); err != nil {
			return d.buildResult(best, iterations, start, err), err
		}
		cfg.Logger.Info("congestion round starting", "iteration", iterations, "nets", len(order))
		d.Grid.ResetIteration()
		outcome := d.runRound(ctx, order, cfg, allPads, weightMultiplier)
		cfg.Logger.Info("congestion round finished", "iteration", iterations, "violations", len(outcome.violations))
		if bestViolations == -1 || len(outcome.violations) < bestViolations {
			best = outcome
			bestViolations = len(outcome.violations)
		}
		if len(outcome.violations) == 0 {
			break
		}
		weightMultiplier *= cfg.PresentCongestionEscalation
	}

	return d.buildResult(best, iterations, start, nil), nil
}

func (d *Driver) runRound(ctx context.Context, order []job, cfg Config, allPads []model.Pad, weightMultiplier float64) roundOutcome {
	var out roundOutcome
	for _, j := range order {
		if err := ctx.Err(); err != nil {
			break
		}

		d.Grid.StampForeignPads(allPads, int32(j.Net.ID), j.Effective.TraceClearance, j.Effective.TraceWidth)
		var pins []search.GridCell
		for _, p := range j.Pads {
			i, gJ := d.Grid.StampPadAnchor(p, int32(j.Net.ID))
			pins = append(pins, search.GridCell{i, gJ, p.Position.Layer})
		}
		if len(pins) < 2 {
			out.routes = append(out.routes, model.Route{NetID: j.Net.ID, NetName: j.Net.Name, Status: model.Routed})
			continue
		}

		params := search.Params{
			NetID:      int32(j.Net.ID),
			Rules:      j.Effective,
			Heuristic:  cfg.Heuristic,
			NodeBudget: cfg.NodeBudgetPerSearch,
			UseConn8:   cfg.UseConn8,
			CongestionAt: func(x, y float64, layer int) float64 {
				i, jj := d.Grid.WorldToGrid(x, y)
				c := d.Grid.At(i, jj, layer)
				if c == nil {
					return 0
				}
				return float64(c.HistoryCost)*j.Effective.HistoryWeight +
					float64(c.UsageCount)*j.Effective.PresentCongestionWeight*weightMultiplier
			},
		}

		res := search.RouteNet(ctx, d.Grid, pins, params)

		var segments []model.Segment
		var vias []model.ViaInstance
		for _, p := range res.Paths {
			segs, vs := search.CellsToSegments(d.Grid, p, j.Net.ID, j.Effective.TraceWidth, j.Effective.ViaDrill, j.Effective.ViaDiameter)
			segments = append(segments, segs...)
			vias = append(vias, vs...)
			claimPath(d.Grid, p, int32(j.Net.ID))
		}
		for _, v := range vias {
			lo, hi := v.LayerFrom, v.LayerTo
			if lo > hi {
				lo, hi = hi, lo
			}
			for l := lo; l <= hi; l++ {
				d.Grid.StampViaClearance(v.X, v.Y, l, v.Diameter, j.Effective.TraceClearance, int32(j.Net.ID))
			}
		}

		status := model.Routed
		if len(res.Unreached) > 0 {
			if len(segments) == 0 {
				status = model.Unrouted
			} else {
				status = model.Partial
			}
			for _, pt := range res.Unreached {
				out.violations = append(out.violations, model.RouteError{
					NetID: j.Net.ID, NetName: j.Net.Name, Kind: model.NetUnreachable,
					Err: &unreachedPinError{point: pt},
				})
			}
		}
		out.routes = append(out.routes, model.Route{
			NetID: j.Net.ID, NetName: j.Net.Name, Status: status, Segments: segments, Vias: vias,
		})
		cfg.Logger.Debug("net routing attempt complete", "net", j.Net.Name, "status", status.String(), "unreached", len(res.Unreached))

		if status != model.Routed && len(pins) >= 2 {
			d.diagnoseAndInflate(pins, int32(j.Net.ID), cfg)
		}

		d.Grid.StampCommittedRoute(segments, int32(j.Net.ID), j.Effective.TraceClearance)
	}
	return out
}

// claimPath marks every cell a found path touches as owned by netID,
// including the intermediate layers a via's barrel passes through.
func claimPath(g *grid.Grid, p search.Path, netID int32) {
	for idx, c := range p.Cells {
		g.MarkNet(c[0], c[1], c[2], netID)
		if idx == 0 {
			continue
		}
		prev := p.Cells[idx-1]
		if prev[2] == c[2] {
			continue
		}
		via, ok := g.Vias().BestVia(prev[2], c[2])
		if !ok {
			continue
		}
		for _, bk := range via.BlockedLayers() {
			g.MarkNet(prev[0], prev[1], bk, netID)
		}
	}
}

// diagnoseAndInflate looks for the region blocking the net's first and
// last pins and inflates the history cost of every foreign-owned cell on
// that region's relaxed path, so the next round's cost function steers
// the owning net elsewhere.
func (d *Driver) diagnoseAndInflate(pins []search.GridCell, netID int32, cfg Config) {
	path := diagnoseBlockage(d.Grid, pins[0], pins[len(pins)-1], cfg.UseConn8)
	for _, c := range path {
		if cell := d.Grid.At(c[0], c[1], c[2]); cell != nil && cell.Net != 0 && cell.Net != netID {
			d.Grid.AddHistoryCost(c[0], c[1], c[2], cfg.HistoryInflationStep)
		}
	}
}

func (d *Driver) buildResult(o roundOutcome, iterations int, start time.Time, ctxErr error) *model.Result {
	res := &model.Result{Routes: o.routes, Violations: o.violations}
	res.Stats.Iterations = iterations
	res.Stats.ElapsedWallTime = time.Since(start)
	for _, r := range o.routes {
		res.Stats.SegmentCount += len(r.Segments)
		res.Stats.ViaCount += r.ViaCount()
		res.Stats.TotalLengthMM += r.TotalLength()
		switch r.Status {
		case model.Routed:
			res.Stats.NetsRouted++
		case model.Partial:
			res.Stats.NetsPartial++
		case model.Unrouted:
			res.Stats.NetsUnrouted++
		}
	}
	if ctxErr != nil {
		res.Logf("search canceled after %d iterations: %v", iterations, ctxErr)
	}
	return res
}

// unreachedPinError wraps the world-space location of a pin the search
// could not reach, for inclusion in a RouteError's chain.
type unreachedPinError struct {
	point model.Point
}

func (e *unreachedPinError) Error() string {
	return fmt.Sprintf("pin unreachable at (%.3f, %.3f, layer %d)", e.point.X, e.point.Y, e.point.Layer)
}
