// Package dispatch orchestrates one question through the engine: subject
// gate, ambiguity guard, advisory classification, the ordered first-match
// solver trial, and normalization/rendering of whatever came out.
package dispatch

import (
	"time"

	"github.com/askchem/askchem/internal/domain/answer"
	"github.com/askchem/askchem/internal/domain/question"
	"github.com/askchem/askchem/internal/infrastructure/monitoring/logging"
	"github.com/askchem/askchem/internal/solver"
	pkgerrors "github.com/askchem/askchem/pkg/errors"
)

// ResultKind labels the terminal state of a dispatch.
type ResultKind string

const (
	KindOutOfDomain   ResultKind = "out_of_domain"
	KindClarification ResultKind = "clarification"
	KindAnswered      ResultKind = "answered"
	KindNoMatch       ResultKind = "no_match"
)

// Request carries the caller's question plus the metadata-only hints. Mode
// and Subject never influence which solver answers; they only decorate the
// response.
type Request struct {
	Question string
	Mode     string
	Subject  string
}

// Result is the terminal outcome of one dispatch. Rendered is populated for
// every kind except KindOutOfDomain, where the caller routes to a different
// handling path instead of showing an answer envelope.
type Result struct {
	Kind         ResultKind
	QuestionType question.QuestionType
	SolverName   string
	TopicTags    []string
	Answer       answer.Answer
	Rendered     answer.RenderedResponse
}

// Metrics receives the dispatch counters. The prometheus-backed
// implementation lives in infrastructure; tests use the no-op.
type Metrics interface {
	GateRejected()
	GuardIntercepted()
	QuestionClassified(qtype string)
	SolverFired(name string)
	SolverPanicked(name string)
	NoMatch()
	DispatchDuration(seconds float64)
}

type nopMetrics struct{}

func (nopMetrics) GateRejected()             {}
func (nopMetrics) GuardIntercepted()         {}
func (nopMetrics) QuestionClassified(string) {}
func (nopMetrics) SolverFired(string)        {}
func (nopMetrics) SolverPanicked(string)     {}
func (nopMetrics) NoMatch()                  {}
func (nopMetrics) DispatchDuration(float64)  {}

// NopMetrics returns a Metrics that records nothing.
func NopMetrics() Metrics { return nopMetrics{} }

// Pipeline is safe for concurrent use: it holds no per-request state and
// every stage is pure over the normalized text.
type Pipeline struct {
	gate    *question.Gate
	guard   *solver.Guard
	solvers []solver.Solver
	logger  logging.Logger
	metrics Metrics
}

// NewPipeline wires the pipeline. A nil logger or metrics falls back to the
// no-op implementation.
func NewPipeline(gate *question.Gate, guard *solver.Guard, solvers []solver.Solver, logger logging.Logger, metrics Metrics) *Pipeline {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Pipeline{
		gate:    gate,
		guard:   guard,
		solvers: solvers,
		logger:  logger.Named("engine.dispatch"),
		metrics: metrics,
	}
}

// Dispatch runs req through the four stages. It never panics and never
// returns an error: every failure mode degrades to a typed terminal Result.
func (p *Pipeline) Dispatch(req Request) Result {
	start := time.Now()
	defer func() {
		p.metrics.DispatchDuration(time.Since(start).Seconds())
	}()

	t := question.Normalize(req.Question)

	if !p.gate.InDomain(t) {
		p.metrics.GateRejected()
		p.logger.Debug("question rejected by subject gate",
			logging.Int("question_len", len(req.Question)))
		return Result{Kind: KindOutOfDomain, QuestionType: question.TypeUnknown}
	}

	qtype := question.ClassifyType(t)
	p.metrics.QuestionClassified(string(qtype))
	renderIn := answer.RenderInput{
		Question:     req.Question,
		QuestionType: string(qtype),
		Mode:         req.Mode,
		Subject:      req.Subject,
	}

	if res := p.guard.Intercept(t); res != nil {
		p.metrics.GuardIntercepted()
		a := answer.FromResult(res)
		return p.finish(Result{
			Kind:         KindClarification,
			QuestionType: qtype,
			TopicTags:    a.TopicTags,
			Answer:       a,
		}, renderIn)
	}

	for _, s := range p.solvers {
		res := p.trySolve(s, t)
		if res == nil {
			continue
		}
		p.metrics.SolverFired(s.Name())
		a := answer.FromResult(res)
		kind := KindAnswered
		if a.Clarify {
			kind = KindClarification
		}
		return p.finish(Result{
			Kind:         kind,
			QuestionType: qtype,
			SolverName:   s.Name(),
			TopicTags:    a.TopicTags,
			Answer:       a,
		}, renderIn)
	}

	p.metrics.NoMatch()
	return p.finish(Result{
		Kind:         KindNoMatch,
		QuestionType: qtype,
		Answer:       answer.NoMatch(),
	}, renderIn)
}

// trySolve isolates one solver invocation: a panic is logged, counted, and
// treated as that solver returning nil so the trial continues.
func (p *Pipeline) trySolve(s solver.Solver, t question.NormalizedText) (res *answer.ReactionResult) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			p.metrics.SolverPanicked(s.Name())
			p.logger.Error("solver panicked during trial",
				logging.String("solver", s.Name()),
				logging.String("error_code", string(pkgerrors.ErrCodeSolverCrash)),
				logging.Any("panic", r))
		}
	}()
	return s.Solve(t)
}

// finish renders and validates the outgoing envelope. A validation failure
// is an internal contract violation: it is logged loudly, never surfaced as
// a crash, and the envelope is returned as rendered.
func (p *Pipeline) finish(r Result, in answer.RenderInput) Result {
	r.Rendered = answer.Render(in, r.Answer)
	if ok, msg := answer.ValidateRendered(r.Rendered); !ok {
		p.logger.Error("rendered response failed structural validation",
			logging.String("error_code", string(pkgerrors.ErrCodeStructuralInvalid)),
			logging.String("violation", msg),
			logging.String("solver", r.SolverName))
	}
	return r
}
