package flowforge

import (
	"log/slog"

	"github.com/nvalerio/flowforge/internal/logging"
	"github.com/nvalerio/flowforge/pkg/assemble"
	"github.com/nvalerio/flowforge/pkg/catalog"
	"github.com/nvalerio/flowforge/pkg/ports"
	"github.com/nvalerio/flowforge/pkg/refine"
	"github.com/nvalerio/flowforge/pkg/score"
	"github.com/nvalerio/flowforge/pkg/validate"
)

// Version is the library version, overridable at build time with
// -ldflags "-X github.com/nvalerio/flowforge.Version=...".
var Version = "0.1.0"

// Engine bundles the core components behind one composition root: the
// deterministic builder, the structural validator, the quality scorer, and
// the repairer. Collaborator-driven refinement is attached separately via
// Pipeline because it needs a synthesizer the embedder provides.
type Engine struct {
	Catalog   *catalog.Catalog
	Builder   *assemble.Builder
	Validator *validate.Validator
	Scorer    *score.Scorer
	Repairer  *refine.Repairer

	logger   *slog.Logger
	scoreCfg score.Config
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithCatalog replaces the built-in node type catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(e *Engine) { e.Catalog = c }
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithScoreConfig overrides the scorer's threshold and ratio knobs.
func WithScoreConfig(cfg score.Config) Option {
	return func(e *Engine) { e.scoreCfg = cfg }
}

// New creates an engine with the built-in catalog and default scoring
// configuration.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:   logging.NewNop(),
		scoreCfg: score.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.Catalog == nil {
		e.Catalog = catalog.Default()
	}
	e.Builder = assemble.NewBuilder()
	e.Validator = validate.New(e.Catalog)
	e.Scorer = score.New(e.Catalog, e.Validator, e.scoreCfg)
	e.Repairer = refine.NewRepairer(e.Catalog,
		refine.WithRepairLogger(e.logger),
		refine.WithMinAnnotations(e.scoreCfg.MinAnnotations),
	)
	return e
}

// Pipeline creates a refinement pipeline around the engine's components
// and the given synthesizer.
func (e *Engine) Pipeline(synth ports.Synthesizer, opts ...refine.Option) *refine.Pipeline {
	base := []refine.Option{
		refine.WithLogger(e.logger),
		refine.WithScorer(e.Scorer),
		refine.WithRepairer(e.Repairer),
	}
	return refine.NewPipeline(synth, append(base, opts...)...)
}
