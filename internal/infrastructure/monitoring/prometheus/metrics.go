package prometheus

import "strconv"

// Histogram buckets tuned for an in-process rule engine: dispatch completes
// in microseconds, HTTP round trips in milliseconds.
var (
	dispatchBuckets = []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05}
	httpBuckets     = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}
	dbBuckets       = []float64{.001, .005, .01, .05, .1, .5, 1}
)

// AppMetrics holds every metric the service emits. Create one per process
// with NewAppMetrics and share it across the dispatch pipeline, HTTP layer,
// and repositories.
type AppMetrics struct {
	// Dispatch pipeline. Counters labeled by result kind, question type,
	// and winning solver name.
	DispatchTotal       CounterVec
	GateRejectionTotal  CounterVec
	GuardInterceptTotal CounterVec
	QuestionTypeTotal   CounterVec
	SolverFiredTotal    CounterVec
	SolverPanicTotal    CounterVec
	NoMatchTotal        CounterVec
	DispatchSeconds     HistogramVec

	// HTTP.
	HTTPRequestTotal   CounterVec
	HTTPRequestSeconds HistogramVec
	HTTPInFlight       GaugeVec
	RateLimitedTotal   CounterVec

	// Persistence and messaging.
	AttemptRecordedTotal CounterVec
	DBQuerySeconds       HistogramVec
	CacheOpTotal         CounterVec
	EventPublishTotal    CounterVec
}

// NewAppMetrics registers every application metric on the collector.
func NewAppMetrics(c MetricsCollector) *AppMetrics {
	return &AppMetrics{
		DispatchTotal:       c.RegisterCounter("dispatch_total", "Questions dispatched, by result kind.", "kind"),
		GateRejectionTotal:  c.RegisterCounter("gate_rejections_total", "Questions rejected by the subject gate."),
		GuardInterceptTotal: c.RegisterCounter("guard_intercepts_total", "Questions intercepted by the ambiguity guard."),
		QuestionTypeTotal:   c.RegisterCounter("question_type_total", "Classified question types.", "qtype"),
		SolverFiredTotal:    c.RegisterCounter("solver_fired_total", "Winning solver per dispatch.", "solver"),
		SolverPanicTotal:    c.RegisterCounter("solver_panics_total", "Solver panics contained during trial.", "solver"),
		NoMatchTotal:        c.RegisterCounter("no_match_total", "In-domain questions no solver matched."),
		DispatchSeconds:     c.RegisterHistogram("dispatch_duration_seconds", "End-to-end dispatch latency.", dispatchBuckets),

		HTTPRequestTotal:   c.RegisterCounter("http_requests_total", "HTTP requests served.", "method", "path", "status"),
		HTTPRequestSeconds: c.RegisterHistogram("http_request_duration_seconds", "HTTP request latency.", httpBuckets, "method", "path"),
		HTTPInFlight:       c.RegisterGauge("http_in_flight_requests", "HTTP requests currently being served."),
		RateLimitedTotal:   c.RegisterCounter("rate_limited_total", "Requests rejected by the rate limiter."),

		AttemptRecordedTotal: c.RegisterCounter("attempts_recorded_total", "Attempts persisted, by exam mode.", "mode"),
		DBQuerySeconds:       c.RegisterHistogram("db_query_duration_seconds", "Database query latency.", dbBuckets, "operation"),
		CacheOpTotal:         c.RegisterCounter("cache_ops_total", "Redis operations, by outcome.", "operation", "outcome"),
		EventPublishTotal:    c.RegisterCounter("events_published_total", "Attempt events published, by outcome.", "topic", "outcome"),
	}
}

// RecordHTTPRequest increments the request counter and observes latency.
func (m *AppMetrics) RecordHTTPRequest(method, path string, status int, seconds float64) {
	m.HTTPRequestTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestSeconds.WithLabelValues(method, path).Observe(seconds)
}

// RecordAttempt counts a persisted attempt for the given exam mode.
func (m *AppMetrics) RecordAttempt(mode string) {
	m.AttemptRecordedTotal.WithLabelValues(mode).Inc()
}

// RecordCacheOp counts a cache operation outcome ("hit", "miss", "error").
func (m *AppMetrics) RecordCacheOp(operation, outcome string) {
	m.CacheOpTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordEventPublish counts a publish outcome ("ok", "error") for a topic.
func (m *AppMetrics) RecordEventPublish(topic, outcome string) {
	m.EventPublishTotal.WithLabelValues(topic, outcome).Inc()
}

// DBTimer returns a Timer observing into the query histogram for operation.
func (m *AppMetrics) DBTimer(operation string) *Timer {
	return NewTimer(m.DBQuerySeconds.WithLabelValues(operation))
}

// DispatchMetrics adapts AppMetrics to the dispatch pipeline's Metrics
// interface.
type DispatchMetrics struct {
	app *AppMetrics
}

// NewDispatchMetrics wraps app for injection into the pipeline.
func NewDispatchMetrics(app *AppMetrics) *DispatchMetrics {
	return &DispatchMetrics{app: app}
}

func (d *DispatchMetrics) GateRejected() {
	d.app.GateRejectionTotal.WithLabelValues().Inc()
	d.app.DispatchTotal.WithLabelValues("out_of_domain").Inc()
}

func (d *DispatchMetrics) GuardIntercepted() {
	d.app.GuardInterceptTotal.WithLabelValues().Inc()
	d.app.DispatchTotal.WithLabelValues("clarification").Inc()
}

func (d *DispatchMetrics) QuestionClassified(qtype string) {
	d.app.QuestionTypeTotal.WithLabelValues(qtype).Inc()
}

func (d *DispatchMetrics) SolverFired(name string) {
	d.app.SolverFiredTotal.WithLabelValues(name).Inc()
	d.app.DispatchTotal.WithLabelValues("answered").Inc()
}

func (d *DispatchMetrics) SolverPanicked(name string) {
	d.app.SolverPanicTotal.WithLabelValues(name).Inc()
}

func (d *DispatchMetrics) NoMatch() {
	d.app.NoMatchTotal.WithLabelValues().Inc()
	d.app.DispatchTotal.WithLabelValues("no_match").Inc()
}

func (d *DispatchMetrics) DispatchDuration(seconds float64) {
	d.app.DispatchSeconds.WithLabelValues().Observe(seconds)
}
