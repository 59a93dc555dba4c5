package router

import (
	"context"
	"time"

	"github.com/oriole-pcb/gridroute/congestion"
	"github.com/oriole-pcb/gridroute/grid"
	"github.com/oriole-pcb/gridroute/model"
	"github.com/oriole-pcb/gridroute/optimize"
	"github.com/oriole-pcb/gridroute/rules"
	"github.com/oriole-pcb/gridroute/strategy"
	"github.com/oriole-pcb/gridroute/subgrid"
)

// Route turns a parsed board into a RouterResult: it sizes a grid to the
// board outline, runs the sub-grid pad-escape pre-pass for any off-grid
// pad, routes every net with the negotiated-congestion driver, then runs
// the geometric optimizer over each routed net before returning. ctx
// cancellation is honored throughout the congestion stage.
func Route(ctx context.Context, board *model.Board, opts ...Option) (*model.Result, error) {
	cfg := resolveConfig(opts...)
	start := time.Now()

	g, err := grid.NewForBoard(board)
	if err != nil {
		return nil, err
	}

	var escapeRoutes []model.Route
	var subgridAnalysis subgrid.Analysis
	if !cfg.DisableSubgridEscape {
		escapeRoutes, subgridAnalysis = runSubgridEscape(g, board, cfg)
	}

	driver := congestion.NewDriver(g, board.Rules)
	result, err := driver.Run(ctx, board, congestion.Config{
		MaxIterations:               cfg.MaxIterations,
		NodeBudgetPerSearch:         cfg.NodeBudgetPerSearch,
		UseConn8:                    cfg.UseConn8,
		Heuristic:                   cfg.Heuristic,
		HistoryInflationStep:        cfg.HistoryInflationStep,
		PresentCongestionEscalation: cfg.PresentCongestionEscalation,
		EffectiveOverride:           buildStrategyOverride(board, subgridAnalysis),
		Logger:                      cfg.Logger,
	})
	if err != nil {
		return result, err
	}

	mergeEscapeSegments(result, escapeRoutes)

	if !cfg.DisableOptimizer {
		runOptimizer(g, board, result, cfg)
	}

	result.Stats.ElapsedWallTime = time.Since(start)
	for i := range result.Routes {
		result.Routes[i] = result.Routes[i].RoundTo001()
	}
	return result, nil
}

// runSubgridEscape analyzes every pad on board for grid misalignment and,
// for each off-grid pad found, stamps an escape segment and unblocks its
// landing cell so the congestion driver's search can reach it. It
// returns one single-segment Route per escape (to be merged into the
// final per-net result after routing) and the Analysis, which strategy
// selection also needs to detect off-grid nets.
func runSubgridEscape(g *grid.Grid, board *model.Board, cfg Config) ([]model.Route, subgrid.Analysis) {
	var opts []subgrid.Option
	if cfg.SubgridTolerance > 0 {
		opts = append(opts, subgrid.WithGridTolerance(cfg.SubgridTolerance))
	}
	sr := subgrid.NewRouter(g, board.Rules, opts...)
	analysis := sr.AnalyzePads(board.AllPads())
	result := sr.GenerateEscapeSegments(analysis)
	result = sr.ApplyEscapeSegments(result)
	return sr.GetEscapeRoutes(result), analysis
}

// buildStrategyOverride resolves each net's routing strategy up front
// (differential pair, off-grid, via-conflict history, high-density
// courtyard, or the plain default) and returns an EffectiveRules
// adjustment the congestion driver applies before its first round. Only
// the via-conflict strategy changes the rules (it scales CostVia); the
// other kinds leave them as they are. The Inspector built here carries no
// via-conflict history, so within a Route call that branch never fires.
func buildStrategyOverride(board *model.Board, analysis subgrid.Analysis) congestion.EffectiveOverride {
	insp := strategy.Inspector{Board: board, SubgridAnalysis: analysis}
	return func(net model.Net, base rules.EffectiveRules) rules.EffectiveRules {
		pads, err := board.Pads(net.ID)
		if err != nil {
			return base
		}
		params := strategy.Select(net, pads, insp)
		switch params.Kind {
		case strategy.ViaConflictResolution:
			base.CostVia *= params.ViaCostMultiplier
		case strategy.HierarchicalDiffPair:
			// Each leg is searched independently and the rules are left
			// unchanged; no length or spacing matching is applied between
			// the two legs of the pair.
		}
		return base
	}
}

// mergeEscapeSegments prepends each escape's segment onto the matching
// net's route in result, so the final geometry includes the short
// off-grid-to-landing-cell stub the main search never had to find itself.
func mergeEscapeSegments(result *model.Result, escapes []model.Route) {
	if len(escapes) == 0 {
		return
	}
	byNet := make(map[int][]model.Route, len(escapes))
	for _, e := range escapes {
		byNet[e.NetID] = append(byNet[e.NetID], e)
	}
	for i := range result.Routes {
		es, ok := byNet[result.Routes[i].NetID]
		if !ok {
			continue
		}
		for _, e := range es {
			result.Routes[i].Segments = append(e.Segments, result.Routes[i].Segments...)
		}
	}
}

// runOptimizer applies the geometric post-processing pipeline to every
// routed or partially-routed net in result, in place.
func runOptimizer(g *grid.Grid, board *model.Board, result *model.Result, cfg Config) {
	for i := range result.Routes {
		route := result.Routes[i]
		if route.Status == model.Unrouted || len(route.Segments) == 0 {
			continue
		}
		effective := rules.For(board.Rules, route.NetName, board.Classes)
		required := requiredPoints(board, route.NetID)
		optCtx := optimize.Context{Grid: g, Rules: effective}

		route = optimize.RunPipeline(route, required, optCtx,
			optimize.MergeCollinear,
			optimize.EliminateZigzag,
			optimize.ConvertCorners,
			optimize.MinimizeVias,
		)

		if effective.LengthCritical {
			if target, ok := cfg.TargetLengths[route.NetName]; ok {
				candidate := optimize.TuneLength(route, target,
					cfg.SerpentineAmplitude, cfg.SerpentineMinSpacing, cfg.SerpentineMinSegmentLength)
				if model.Connected(candidate.Segments, candidate.Vias, required) {
					route = candidate
				}
			}
		}

		result.Routes[i] = route
	}
}

// requiredPoints resolves netID's pads to the connectivity checkpoints
// RunPipeline's validation must keep joined.
func requiredPoints(board *model.Board, netID int) []model.Point {
	pads, err := board.Pads(netID)
	if err != nil {
		return nil
	}
	pts := make([]model.Point, len(pads))
	for i, p := range pads {
		pts[i] = p.Position
	}
	return pts
}
