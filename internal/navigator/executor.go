// Package navigator executes resolved navigation paths against a Provider and
// records successful navigations in a journal.
package navigator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/atomic"

	"github.com/zjrosen/waypoint/internal/domain/navigation"
	"github.com/zjrosen/waypoint/internal/log"
	"github.com/zjrosen/waypoint/internal/pubsub"
	"github.com/zjrosen/waypoint/internal/tracing"
)

var (
	// ErrExecutorClosed is reported for navigations submitted to, or still pending in, a closed executor.
	ErrExecutorClosed = errors.New("executor is closed")
	// ErrJournalReleased is reported for navigations still pending when their journal is released.
	ErrJournalReleased = errors.New("journal released")
)

// Event is the payload published for every finished navigation.
type Event struct {
	NavigationID string
	URI          string
	Entry        navigation.JournalEntry
	Err          error
}

// Stats are cumulative executor counters.
type Stats struct {
	Succeeded uint64
	Failed    uint64
	WentBack  uint64
	Rejected  uint64
}

// Executor runs navigations. Each journal gets one worker goroutine that
// applies its navigations strictly in submission order; different journals
// proceed independently.
type Executor struct {
	provider  Provider
	tracer    trace.Tracer
	events    *pubsub.Broker[Event]
	queueSize int
	newID     func() string

	mu      sync.Mutex
	workers map[*navigation.Journal]*worker
	// retiring holds released workers still finishing a navigation, so a
	// new worker for the same journal starts only after they exit.
	retiring map[*navigation.Journal]*worker
	closed  bool
	wg      sync.WaitGroup

	succeeded *atomic.Uint64
	failed    *atomic.Uint64
	wentBack  *atomic.Uint64
	rejected  *atomic.Uint64
}

// Option configures an Executor.
type Option func(*Executor)

// WithTracer sets the tracer used for navigation spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Executor) {
		if tracer != nil {
			e.tracer = tracer
		}
	}
}

// WithEvents publishes navigation outcomes on broker.
func WithEvents(broker *pubsub.Broker[Event]) Option {
	return func(e *Executor) {
		e.events = broker
	}
}

// WithQueueSize bounds the pending navigations per journal.
func WithQueueSize(n int) Option {
	return func(e *Executor) {
		e.queueSize = n
	}
}

// WithIDGenerator sets the navigation ID generator. Defaults to random UUIDs.
func WithIDGenerator(fn func() string) Option {
	return func(e *Executor) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// NewExecutor creates an executor presenting through provider.
func NewExecutor(provider Provider, opts ...Option) *Executor {
	e := &Executor{
		provider:  provider,
		tracer:    noop.NewTracerProvider().Tracer("noop"),
		queueSize: DefaultQueueSize,
		newID:     uuid.NewString,
		workers:   make(map[*navigation.Journal]*worker),
		retiring:  make(map[*navigation.Journal]*worker),
		succeeded: atomic.NewUint64(0),
		failed:    atomic.NewUint64(0),
		wentBack:  atomic.NewUint64(0),
		rejected:  atomic.NewUint64(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute schedules path for presentation and returns immediately.
// On success the path is pushed onto journal and then OnSuccess runs; on
// failure OnError receives an *navigation.ExecutionError. Callbacks always
// run on the journal's worker goroutine, never in the caller.
func (e *Executor) Execute(ctx context.Context, path navigation.ResolvedPath, journal *navigation.Journal, callbacks ...navigation.Callback) *navigation.Navigation {
	return e.submit(job{
		kind:      jobForward,
		ctx:       ctx,
		path:      path,
		callbacks: navigation.NewCallbacks(callbacks...),
	}, journal)
}

// GoBack schedules a return to the previous journal entry. The provider
// re-presents that entry and only then does the journal cursor move back.
// An empty journal is reported as *navigation.EmptyJournalError.
func (e *Executor) GoBack(ctx context.Context, journal *navigation.Journal, callbacks ...navigation.Callback) *navigation.Navigation {
	return e.submit(job{
		kind:      jobBack,
		ctx:       ctx,
		callbacks: navigation.NewCallbacks(callbacks...),
	}, journal)
}

func (e *Executor) submit(j job, journal *navigation.Journal) *navigation.Navigation {
	j.nav = navigation.NewNavigation(e.newID())
	j.enqueuedAt = time.Now()
	if j.ctx == nil {
		j.ctx = context.Background()
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		e.reject(j, ErrExecutorClosed)
		return j.nav
	}
	w := e.workerFor(journal)
	err := w.queue.enqueue(j)
	e.mu.Unlock()

	if err != nil {
		e.reject(j, err)
		return j.nav
	}
	log.Debug(log.CatNav, "navigation queued", "id", j.nav.ID(), "uri", j.path.URI(), "pending", w.queue.len())
	w.notify()
	return j.nav
}

// reject fails j without running it. Callbacks still run off the caller's goroutine.
func (e *Executor) reject(j job, cause error) {
	e.rejected.Inc()
	err := &navigation.ExecutionError{NavigationID: j.nav.ID(), URI: j.path.URI(), Err: cause}
	log.Warn(log.CatNav, "navigation rejected", "id", j.nav.ID(), "uri", j.path.URI(), "reason", cause)
	go e.finish(j, err)
}

// workerFor must be called with mu held.
func (e *Executor) workerFor(journal *navigation.Journal) *worker {
	if w, ok := e.workers[journal]; ok {
		return w
	}
	w := &worker{
		journal: journal,
		queue:   newJobQueue(e.queueSize),
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		exited:  make(chan struct{}),
	}
	e.workers[journal] = w
	prev := e.retiring[journal]
	delete(e.retiring, journal)

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		defer close(w.exited)
		if prev != nil {
			<-prev.exited
		}
		e.loop(w)
	}()
	return w
}

func (e *Executor) loop(w *worker) {
	for {
		select {
		case <-w.stop:
			e.failPending(w)
			return
		default:
		}
		if j, ok := w.queue.dequeue(); ok {
			e.run(w.journal, j)
			continue
		}
		select {
		case <-w.wake:
		case <-w.stop:
			e.failPending(w)
			return
		}
	}
}

func (e *Executor) failPending(w *worker) {
	for _, j := range w.queue.drain() {
		e.rejected.Inc()
		e.finish(j, &navigation.ExecutionError{NavigationID: j.nav.ID(), URI: j.path.URI(), Err: w.stopErr})
	}
}

func (e *Executor) run(journal *navigation.Journal, j job) {
	switch j.kind {
	case jobBack:
		e.runBack(journal, j)
	default:
		e.runForward(journal, j)
	}
}

func (e *Executor) runForward(journal *navigation.Journal, j job) {
	ctx, span := tracing.StartNavigation(j.ctx, e.tracer, tracing.SpanNavigate, j.nav.ID(), j.path.URI())
	span.AddEvent(tracing.EventQueued, trace.WithTimestamp(j.enqueuedAt))

	err := e.present(ctx, j.path)
	var entry navigation.JournalEntry
	if err == nil {
		span.AddEvent(tracing.EventProviderApplied)
		entry = journal.Push(j.path)
		span.AddEvent(tracing.EventJournalPushed)
		span.SetAttributes(attribute.Int(tracing.AttrJournalLen, journal.Len()))
	} else {
		err = &navigation.ExecutionError{NavigationID: j.nav.ID(), URI: j.path.URI(), Err: err}
	}
	tracing.EndNavigation(span, err)

	if err != nil {
		e.failed.Inc()
		log.ErrorErr(log.CatNav, "navigation failed", err, "id", j.nav.ID(), "uri", j.path.URI())
		e.publish(pubsub.NavigationFailedEvent, Event{NavigationID: j.nav.ID(), URI: j.path.URI(), Err: err})
	} else {
		e.succeeded.Inc()
		log.Info(log.CatNav, "navigated", "id", j.nav.ID(), "uri", j.path.URI(), "entry", entry.ID)
		e.publish(pubsub.NavigatedEvent, Event{NavigationID: j.nav.ID(), URI: j.path.URI(), Entry: entry})
	}
	e.finish(j, err)
}

func (e *Executor) runBack(journal *navigation.Journal, j job) {
	prev, err := journal.Previous()
	if err != nil {
		log.Debug(log.CatJournal, "nothing to go back to", "id", j.nav.ID(), "len", journal.Len())
		e.failed.Inc()
		e.finish(j, err)
		return
	}

	ctx, span := tracing.StartNavigation(j.ctx, e.tracer, tracing.SpanGoBack, j.nav.ID(), prev.Path.URI())
	span.SetAttributes(attribute.String(tracing.AttrDirection, "back"))

	err = e.presentBack(ctx, prev.Path)
	if err == nil {
		_, err = journal.GoBack()
	} else {
		err = &navigation.ExecutionError{NavigationID: j.nav.ID(), URI: prev.Path.URI(), Err: err}
	}
	tracing.EndNavigation(span, err)

	if err != nil {
		e.failed.Inc()
		log.ErrorErr(log.CatJournal, "go back failed", err, "id", j.nav.ID())
		e.publish(pubsub.NavigationFailedEvent, Event{NavigationID: j.nav.ID(), URI: prev.Path.URI(), Err: err})
	} else {
		e.wentBack.Inc()
		log.Info(log.CatJournal, "went back", "id", j.nav.ID(), "uri", prev.Path.URI(), "cursor", journal.Cursor())
		e.publish(pubsub.WentBackEvent, Event{NavigationID: j.nav.ID(), URI: prev.Path.URI(), Entry: prev})
	}
	e.finish(j, err)
}

// present calls the provider, converting panics into errors.
func (e *Executor) present(ctx context.Context, path navigation.ResolvedPath) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider panicked: %v", r)
		}
	}()
	return e.provider.Present(ctx, path)
}

func (e *Executor) presentBack(ctx context.Context, to navigation.ResolvedPath) (err error) {
	bp, ok := e.provider.(BackPresenter)
	if !ok {
		return e.present(ctx, to)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider panicked: %v", r)
		}
	}()
	return bp.PresentBack(ctx, to)
}

// finish runs the callbacks and then completes the handle, so a caller
// returning from Wait observes the callbacks' effects.
func (e *Executor) finish(j job, err error) {
	defer j.nav.Complete(err)
	defer func() {
		if r := recover(); r != nil {
			log.Error(log.CatNav, "navigation callback panicked", "id", j.nav.ID(), "panic", r)
		}
	}()
	if err != nil {
		j.callbacks.Fail(err)
		return
	}
	j.callbacks.Succeed()
}

func (e *Executor) publish(t pubsub.EventType, ev Event) {
	if e.events != nil {
		e.events.Publish(t, ev)
	}
}

// Stats returns a snapshot of the executor counters.
func (e *Executor) Stats() Stats {
	return Stats{
		Succeeded: e.succeeded.Load(),
		Failed:    e.failed.Load(),
		WentBack:  e.wentBack.Load(),
		Rejected:  e.rejected.Load(),
	}
}

// Close stops all workers. The navigation in flight finishes; pending ones
// fail with ErrExecutorClosed. Close blocks until every worker has exited.
func (e *Executor) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	for _, w := range e.workers {
		w.halt(ErrExecutorClosed)
	}
	e.mu.Unlock()

	e.wg.Wait()
	log.Debug(log.CatNav, "executor closed", "succeeded", e.succeeded.Load(), "failed", e.failed.Load())
}

// Release stops the worker serving journal and forgets it. The navigation in
// flight finishes; pending ones fail with ErrJournalReleased. Release does not
// wait for the worker, so it is safe to call from a navigation callback. A
// later Execute on the same journal starts a new worker.
func (e *Executor) Release(journal *navigation.Journal) {
	e.mu.Lock()
	defer e.mu.Unlock()

	w, ok := e.workers[journal]
	if !ok {
		return
	}
	delete(e.workers, journal)
	e.retiring[journal] = w
	w.halt(ErrJournalReleased)
	go func() {
		<-w.exited
		e.mu.Lock()
		if e.retiring[journal] == w {
			delete(e.retiring, journal)
		}
		e.mu.Unlock()
	}()
	log.Debug(log.CatNav, "journal released", "pending", w.queue.len())
}

type worker struct {
	journal *navigation.Journal
	queue   *jobQueue
	wake    chan struct{}
	stop    chan struct{}
	exited  chan struct{}
	stopErr error
}

// halt must be called with the executor mu held, at most once per worker.
func (w *worker) halt(cause error) {
	w.stopErr = cause
	close(w.stop)
}

func (w *worker) notify() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}
