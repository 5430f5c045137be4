// Package controller owns the search lifecycle: it validates the query,
// plays the staged progress timeline, issues the request, paces the
// post-processing phases and hands the terminal outcome to the renderer.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"seekterm/internal/domain"
	"seekterm/internal/eventbus"
	"seekterm/internal/render"
	"seekterm/internal/search"
	"seekterm/internal/stages"
)

var (
	// ErrInvalidInput is returned for empty or whitespace-only queries
	ErrInvalidInput = errors.New("missing query")
	// ErrSearchInProgress is returned when a search is already running; the
	// new query is ignored
	ErrSearchInProgress = errors.New("search in progress")
)

// Post-processing phase names
const (
	PhaseParsing = "parsing response"
	PhaseRanking = "ranking results"
)

// Status labels outside the stage list
const (
	InitializingLabel = "Initializing search"
	ParsingLabel      = "Parsing response"
	RankingLabel      = "Ranking results"
)

// FailureReason is the reason carried by Failed after a request problem
const FailureReason = "request failed"

// Default post-processing delays
const (
	DefaultParseDelay = 500 * time.Millisecond
	DefaultRankDelay  = 300 * time.Millisecond
)

// Fetcher issues the search request and returns the raw payload
type Fetcher interface {
	Fetch(ctx context.Context, query string) ([]byte, error)
}

// StatusSink is the status/progress side channel
type StatusSink interface {
	ShowStatus(text string, progress int)
	ClearStatus()
}

// Target receives rendered output
type Target interface {
	ClearResults()
	Present(tree domain.PresentationTree)
}

// RenderFunc maps an outcome to a presentation tree
type RenderFunc func(domain.Outcome) domain.PresentationTree

// Controller runs one search at a time
type Controller struct {
	fetcher Fetcher
	status  StatusSink
	target  Target
	render  RenderFunc
	stages  []stages.Stage
	sleep   stages.Sleeper
	parse   time.Duration
	rank    time.Duration
	bus     eventbus.EventBus
	log     *zap.Logger
	newID   func() string

	mu       sync.Mutex
	inFlight bool
	state    domain.LifecycleState
	progress int
	last     domain.PresentationTree
}

// Option configures a Controller
type Option func(*Controller)

// WithSleeper replaces the wall-clock sleeper
func WithSleeper(s stages.Sleeper) Option { return func(c *Controller) { c.sleep = s } }

// WithStages replaces the default stage list
func WithStages(st []stages.Stage) Option { return func(c *Controller) { c.stages = st } }

// WithPostDelays sets the parsing and ranking pauses
func WithPostDelays(parse, rank time.Duration) Option {
	return func(c *Controller) { c.parse, c.rank = parse, rank }
}

// WithRenderer replaces render.Render
func WithRenderer(fn RenderFunc) Option { return func(c *Controller) { c.render = fn } }

// WithBus publishes lifecycle events on bus
func WithBus(bus eventbus.EventBus) Option { return func(c *Controller) { c.bus = bus } }

// WithLogger sets the logger
func WithLogger(log *zap.Logger) Option { return func(c *Controller) { c.log = log } }

// WithIDGenerator replaces the search id source
func WithIDGenerator(fn func() string) Option { return func(c *Controller) { c.newID = fn } }

// New builds a controller around its collaborators
func New(fetcher Fetcher, status StatusSink, target Target, opts ...Option) *Controller {
	c := &Controller{
		fetcher: fetcher,
		status:  status,
		target:  target,
		render:  render.Render,
		stages:  stages.Default(),
		sleep:   stages.Sleep,
		parse:   DefaultParseDelay,
		rank:    DefaultRankDelay,
		log:     zap.NewNop(),
		newID:   func() string { return uuid.NewString() },
		state:   domain.Idle(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.Named("controller")
	return c
}

// State returns the current lifecycle state
func (c *Controller) State() domain.LifecycleState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Progress returns the last published progress percentage
func (c *Controller) Progress() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progress
}

// LastRendered returns the most recently presented tree
func (c *Controller) LastRendered() domain.PresentationTree {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// InFlight reports whether a search is running
func (c *Controller) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// RunSearch drives one complete search. It blocks until a terminal state is
// reached. The returned error is informational: every failure has already
// been rendered as a terminal outcome. A call made while another search is
// running returns ErrSearchInProgress and changes nothing.
func (c *Controller) RunSearch(ctx context.Context, raw string) error {
	if !c.begin() {
		c.log.Debug("search ignored, another search is in flight")
		c.publish(domain.SearchIgnoredEvent{Query: raw})
		return ErrSearchInProgress
	}
	defer c.end()

	query, ok := domain.ParseQuery(raw)
	if !ok {
		c.log.Debug("rejected empty query")
		c.transition("", domain.Failed(ErrInvalidInput.Error()))
		c.present(domain.FailedOutcome(render.MissingQueryMessage))
		return ErrInvalidInput
	}

	id := c.newID()
	log := c.log.With(zap.String("search_id", id))
	log.Debug("search started", zap.String("query", query.String()))
	c.publish(domain.SearchStartedEvent{SearchID: id, Query: query})

	c.transition(id, domain.Idle())
	c.clearResults()
	c.showStatus(InitializingLabel, 0)

	err := stages.Run(ctx, c.stages, c.sleep, func(step stages.Step) {
		c.transition(id, domain.Staging(step.Index, step.Total))
		c.showStatus(step.Stage.Label, step.Percent)
	})
	if err != nil {
		return c.fail(log, id, fmt.Errorf("staging interrupted: %w", err))
	}

	records, err := c.execute(ctx, id, query)
	if err != nil {
		return c.fail(log, id, err)
	}

	c.clearStatus()

	if len(records) == 0 {
		log.Debug("search finished without results")
		c.transition(id, domain.Empty())
		c.present(domain.EmptyOutcome())
		return nil
	}

	log.Debug("search finished", zap.Int("results", len(records)))
	c.transition(id, domain.Success(records))
	c.present(domain.SuccessOutcome(records))
	return nil
}

// execute performs the request and the paced post-processing phases
func (c *Controller) execute(ctx context.Context, id string, query domain.SearchQuery) ([]domain.ResultRecord, error) {
	c.transition(id, domain.AwaitingResponse())

	payload, err := c.fetcher.Fetch(ctx, query.String())
	if err != nil {
		return nil, err
	}

	c.transition(id, domain.PostProcessing(PhaseParsing))
	c.showStatus(ParsingLabel, c.Progress())
	if err := c.sleep(ctx, c.parse); err != nil {
		return nil, err
	}

	records, err := search.DecodeRecords(payload)
	if err != nil {
		return nil, err
	}

	c.transition(id, domain.PostProcessing(PhaseRanking))
	c.showStatus(RankingLabel, c.Progress())
	if err := c.sleep(ctx, c.rank); err != nil {
		return nil, err
	}

	return records, nil
}

func (c *Controller) fail(log *zap.Logger, id string, err error) error {
	log.Debug("search failed", zap.Error(err))
	c.publish(domain.SearchFailedEvent{SearchID: id, Err: err})
	c.clearStatus()
	c.transition(id, domain.Failed(FailureReason))
	c.present(domain.FailedOutcome(render.FailureMessage))
	return err
}

func (c *Controller) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return false
	}
	c.inFlight = true
	return true
}

func (c *Controller) end() {
	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()
}

func (c *Controller) transition(id string, s domain.LifecycleState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
	c.log.Debug("lifecycle", zap.String("search_id", id), zap.Stringer("state", s))
	c.publish(domain.LifecycleChangedEvent{SearchID: id, State: s})
}

func (c *Controller) showStatus(text string, progress int) {
	c.mu.Lock()
	c.progress = progress
	c.mu.Unlock()
	c.status.ShowStatus(text, progress)
}

func (c *Controller) clearStatus() {
	c.mu.Lock()
	c.progress = 0
	c.mu.Unlock()
	c.status.ClearStatus()
}

func (c *Controller) clearResults() {
	c.mu.Lock()
	c.last = domain.PresentationTree{}
	c.mu.Unlock()
	c.target.ClearResults()
}

func (c *Controller) present(outcome domain.Outcome) {
	tree := c.render(outcome)
	c.mu.Lock()
	c.last = tree
	c.mu.Unlock()
	c.target.Present(tree)
}

func (c *Controller) publish(e domain.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(e)
	}
}
