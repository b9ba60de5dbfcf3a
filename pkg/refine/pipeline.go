// Package refine implements the iterative synthesize-repair-score loop
// that turns a free-text intent into an acceptable workflow graph. The
// synthesizer and retriever are ports; the pipeline owns repair, scoring,
// feedback folding, and the attempt budget. A run never fails: every
// outcome is a Result with an explicit status.
package refine

import (
	"context"
	"log/slog"

	"github.com/nvalerio/flowforge/internal/logging"
	"github.com/nvalerio/flowforge/internal/metrics"
	"github.com/nvalerio/flowforge/pkg/catalog"
	"github.com/nvalerio/flowforge/pkg/domain"
	"github.com/nvalerio/flowforge/pkg/ports"
	"github.com/nvalerio/flowforge/pkg/score"
	"github.com/nvalerio/flowforge/pkg/validate"
)

// DefaultMaxAttempts is the synthesis attempt budget per run.
const DefaultMaxAttempts = 3

// Pipeline drives the refinement loop. Construct once and share freely: a
// pipeline is stateless across runs, and each run is single-threaded by
// design since every attempt feeds on the previous attempt's feedback.
type Pipeline struct {
	synth       ports.Synthesizer
	retriever   ports.Retriever
	scorer      *score.Scorer
	repairer    *Repairer
	logger      *slog.Logger
	metrics     *metrics.Metrics
	maxAttempts int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRetriever sets the reference-material collaborator. Without one the
// pipeline synthesizes unguided.
func WithRetriever(r ports.Retriever) Option {
	return func(p *Pipeline) { p.retriever = r }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithScorer overrides the default scorer.
func WithScorer(s *score.Scorer) Option {
	return func(p *Pipeline) { p.scorer = s }
}

// WithRepairer overrides the default repairer.
func WithRepairer(r *Repairer) Option {
	return func(p *Pipeline) { p.repairer = r }
}

// WithMaxAttempts sets the synthesis attempt budget.
func WithMaxAttempts(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxAttempts = n
		}
	}
}

// WithMetrics injects pipeline instruments. Nil metrics are a no-op.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// NewPipeline creates a pipeline around the given synthesizer. The default
// collaborators use the built-in catalog, the default scorer config, and a
// no-op logger.
func NewPipeline(synth ports.Synthesizer, opts ...Option) *Pipeline {
	cat := catalog.Default()
	p := &Pipeline{
		synth:       synth,
		logger:      logging.NewNop(),
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.scorer == nil {
		p.scorer = score.New(cat, validate.New(cat), score.DefaultConfig())
	}
	if p.repairer == nil {
		p.repairer = NewRepairer(cat, WithRepairLogger(p.logger))
	}
	return p
}

// Generate runs the refinement loop for one request. It always returns a
// result: collaborator failures consume attempts, a cancelled context ends
// the run at the next attempt boundary with the best candidate so far, and
// an exhausted budget returns the best candidate with ThresholdMet false.
func (p *Pipeline) Generate(ctx context.Context, req Request) *Result {
	tier, err := score.ParseTier(req.Tier)
	if err != nil {
		p.logger.Warn("unknown tier, using standard", "tier", req.Tier, "err", err)
		tier = score.TierStandard
	}

	instr := Instruction{
		Intent:       req.Intent,
		Tier:         tier,
		MinNodes:     tier.MinNodes(),
		Integrations: req.Integrations,
		Context:      req.Context,
		References:   p.retrieve(ctx, req, tier),
	}

	var (
		best       *domain.Workflow
		bestReport score.Report
		attempts   int
	)

	for attempts < p.maxAttempts {
		if ctx.Err() != nil {
			p.logger.Info("run cancelled", "attempts", attempts)
			break
		}
		attempts++
		p.metrics.ObserveAttempt()

		wf, err := p.synth.Synthesize(ctx, &instr)
		if err != nil || wf == nil {
			p.metrics.ObserveSynthesisFailure()
			p.logger.Warn("no candidate from synthesizer", "attempt", attempts, "err", err)
			continue
		}

		wf = p.repairer.Repair(wf)
		report := p.scorer.Score(wf, tier)
		p.logger.Info("candidate scored",
			"attempt", attempts, "score", report.Score, "grade", report.Grade)

		if best == nil || report.Score > bestReport.Score {
			best, bestReport = wf, report
		}
		if report.Valid {
			p.metrics.ObserveOutcome(report.Score, true)
			return &Result{
				Workflow:     wf,
				Report:       &report,
				AttemptsUsed: attempts,
				ThresholdMet: true,
				Status:       StatusAccepted,
			}
		}

		instr.Directives = report.Feedback
	}

	res := &Result{
		AttemptsUsed: attempts,
		Status:       StatusExhausted,
	}
	if best != nil {
		res.Workflow = best
		res.Report = &bestReport
		p.metrics.ObserveOutcome(bestReport.Score, false)
	} else {
		p.metrics.ObserveOutcome(0, false)
	}
	return res
}

// retrieve fetches reference material, tolerating both a missing retriever
// and retrieval errors.
func (p *Pipeline) retrieve(ctx context.Context, req Request, tier score.Tier) []ports.Reference {
	if p.retriever == nil {
		return nil
	}
	refs, err := p.retriever.Retrieve(ctx, ports.Query{
		Intent:       req.Intent,
		Integrations: req.Integrations,
		Tier:         string(tier),
	})
	if err != nil {
		p.logger.Warn("reference retrieval failed, continuing unguided", "err", err)
		return nil
	}
	return refs
}
