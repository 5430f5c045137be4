package domain

import (
	"fmt"
	"strings"
)

// SearchQuery is a trimmed, non-empty free-text query
type SearchQuery string

// ParseQuery trims raw input and reports whether anything searchable is left
func ParseQuery(raw string) (SearchQuery, bool) {
	q := strings.TrimSpace(raw)
	if q == "" {
		return "", false
	}
	return SearchQuery(q), true
}

// String returns the query text
func (q SearchQuery) String() string { return string(q) }

// ResultRecord represents one record returned by the search endpoint.
// Pointer fields are nil when the endpoint omitted them or sent null.
type ResultRecord struct {
	Title      *string  `json:"Name"`
	Size       *float64 `json:"Size"` // gibibytes
	Resolution *string  `json:"Resolution"`
	Seeders    *int     `json:"Seeders"`
	Leechers   *int     `json:"Leechers"`
	Source     *string  `json:"Source"`
	Origin     *string  `json:"SiteName"`
	Identifier *string  `json:"MagnetLink"`
	Score      float64  `json:"Score"`
}

// CopyableIdentifier returns the identifier or "" when absent
func (r ResultRecord) CopyableIdentifier() string {
	if r.Identifier == nil {
		return ""
	}
	return *r.Identifier
}

// Phase is the kind of a lifecycle state
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseStaging
	PhaseAwaitingResponse
	PhasePostProcessing
	PhaseSuccess
	PhaseEmpty
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseStaging:
		return "staging"
	case PhaseAwaitingResponse:
		return "awaiting-response"
	case PhasePostProcessing:
		return "post-processing"
	case PhaseSuccess:
		return "success"
	case PhaseEmpty:
		return "empty"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Terminal reports whether the phase ends a search
func (p Phase) Terminal() bool {
	return p == PhaseSuccess || p == PhaseEmpty || p == PhaseFailed
}

// LifecycleState is the single active state of a search controller.
// Only the fields relevant to Phase are set.
type LifecycleState struct {
	Phase       Phase
	StageIndex  int    // 1-based, staging only
	TotalStages int    // staging only
	PostPhase   string // post-processing only
	Results     []ResultRecord
	Reason      string // failed only
}

// Idle returns the idle state
func Idle() LifecycleState { return LifecycleState{Phase: PhaseIdle} }

// Staging returns the state for stage i of n
func Staging(i, n int) LifecycleState {
	return LifecycleState{Phase: PhaseStaging, StageIndex: i, TotalStages: n}
}

// AwaitingResponse returns the state while the request is in flight
func AwaitingResponse() LifecycleState { return LifecycleState{Phase: PhaseAwaitingResponse} }

// PostProcessing returns the state for a named post-processing phase
func PostProcessing(phase string) LifecycleState {
	return LifecycleState{Phase: PhasePostProcessing, PostPhase: phase}
}

// Success returns the terminal state carrying results
func Success(results []ResultRecord) LifecycleState {
	return LifecycleState{Phase: PhaseSuccess, Results: results}
}

// Empty returns the terminal no-results state
func Empty() LifecycleState { return LifecycleState{Phase: PhaseEmpty} }

// Failed returns the terminal failure state
func Failed(reason string) LifecycleState {
	return LifecycleState{Phase: PhaseFailed, Reason: reason}
}

func (s LifecycleState) String() string {
	switch s.Phase {
	case PhaseStaging:
		return fmt.Sprintf("staging(%d/%d)", s.StageIndex, s.TotalStages)
	case PhasePostProcessing:
		return fmt.Sprintf("post-processing(%s)", s.PostPhase)
	case PhaseSuccess:
		return fmt.Sprintf("success(%d)", len(s.Results))
	case PhaseFailed:
		return fmt.Sprintf("failed(%s)", s.Reason)
	default:
		return s.Phase.String()
	}
}

// OutcomeKind selects the renderer path
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeEmpty
	OutcomeFailed
)

// Outcome is the terminal input to the renderer
type Outcome struct {
	Kind    OutcomeKind
	Results []ResultRecord
	Message string
}

// SuccessOutcome wraps results for rendering
func SuccessOutcome(results []ResultRecord) Outcome {
	return Outcome{Kind: OutcomeSuccess, Results: results}
}

// EmptyOutcome is the no-results outcome
func EmptyOutcome() Outcome { return Outcome{Kind: OutcomeEmpty} }

// FailedOutcome carries a user-facing message
func FailedOutcome(message string) Outcome {
	return Outcome{Kind: OutcomeFailed, Message: message}
}

// EndpointHealth is the payload of the endpoint's health probe
type EndpointHealth struct {
	Status string `json:"status"`
	Site   string `json:"site"`
	Mirror string `json:"mirror"`
}
