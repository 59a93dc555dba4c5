package router

import (
	"log/slog"

	"github.com/oriole-pcb/gridroute/search"
)

// Config tunes a Route call. Zero-value Config gets the same defaults
// congestion.Config.applyDefaults applies, plus the router-level passes
// enabled by default (subgrid escape and the full optimizer sequence).
type Config struct {
	MaxIterations               int
	NodeBudgetPerSearch         int
	UseConn8                    bool
	Heuristic                   search.Heuristic
	HistoryInflationStep        float32
	PresentCongestionEscalation float64

	// Logger receives iteration-boundary and net-completion events from the
	// congestion driver. A nil Logger gets slog.Default().
	Logger *slog.Logger

	// DisableSubgridEscape skips the off-grid pad detection and escape
	// pre-pass entirely; every pad is assumed on-grid.
	DisableSubgridEscape bool

	// DisableOptimizer skips the geometric post-processing pipeline,
	// returning raw search output.
	DisableOptimizer bool

	// SubgridTolerance overrides subgrid's default off-grid detection
	// tolerance when positive.
	SubgridTolerance float64

	// TargetLengths maps a length-critical net's name to the total trace
	// length (mm) the serpentine tuning pass should approach. Nets absent
	// from this map skip length tuning even when their NetClass is
	// LengthCritical.
	TargetLengths map[string]float64

	// SerpentineAmplitude, SerpentineMinSpacing, and
	// SerpentineMinSegmentLength override optimize.GenerateTrombone's
	// defaults when positive.
	SerpentineAmplitude        float64
	SerpentineMinSpacing       float64
	SerpentineMinSegmentLength float64
}

// Option configures a Config via functional options.
type Option func(*Config)

// WithMaxIterations overrides the congestion driver's iteration budget.
func WithMaxIterations(n int) Option { return func(c *Config) { c.MaxIterations = n } }

// WithNodeBudget overrides the per-search A* node expansion budget.
func WithNodeBudget(n int) Option { return func(c *Config) { c.NodeBudgetPerSearch = n } }

// WithConn8 enables 8-connected (diagonal) grid neighbors.
func WithConn8() Option { return func(c *Config) { c.UseConn8 = true } }

// WithHeuristic overrides the default A* heuristic.
func WithHeuristic(h search.Heuristic) Option { return func(c *Config) { c.Heuristic = h } }

// WithLogger sets the structured logger the congestion driver logs
// iteration boundaries and net completions to.
func WithLogger(l *slog.Logger) Option { return func(c *Config) { c.Logger = l } }

// WithoutSubgridEscape disables the sub-grid pad-escape pre-pass.
func WithoutSubgridEscape() Option { return func(c *Config) { c.DisableSubgridEscape = true } }

// WithoutOptimizer disables the geometric post-processing pipeline.
func WithoutOptimizer() Option { return func(c *Config) { c.DisableOptimizer = true } }

// WithTargetLength sets a length-critical net's serpentine length target.
func WithTargetLength(netName string, mm float64) Option {
	return func(c *Config) {
		if c.TargetLengths == nil {
			c.TargetLengths = make(map[string]float64)
		}
		c.TargetLengths[netName] = mm
	}
}

func resolveConfig(opts ...Option) Config {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
