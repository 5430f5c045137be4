// Package render maps a terminal search outcome to a presentation tree.
// It holds no state.
package render

import (
	"math"
	"strconv"
	"strings"

	"seekterm/internal/domain"
)

// Placeholders shown for absent fields
const (
	UnknownTitle = "UNKNOWN"
	UnknownLabel = "UNKNOWN"
	UnknownCount = "?"
	UnknownSize  = "? GB"
)

// Fixed messages
const (
	NoResultsMessage    = "No results found. Try different search terms."
	MissingQueryMessage = "Please enter a search query."
	FailureMessage      = "Search failed. Check the connection and try again."
)

// Render produces the presentation tree for an outcome
func Render(outcome domain.Outcome) domain.PresentationTree {
	switch outcome.Kind {
	case domain.OutcomeSuccess:
		if len(outcome.Results) == 0 {
			return emptyTree()
		}
		units := make([]domain.PresentationUnit, 0, len(outcome.Results))
		for i, rec := range outcome.Results {
			units = append(units, recordUnit(i, rec))
		}
		return domain.PresentationTree{Units: units}

	case domain.OutcomeEmpty:
		return emptyTree()

	default:
		msg := Sanitize(strings.TrimSpace(outcome.Message))
		if msg == "" {
			msg = FailureMessage
		}
		return domain.PresentationTree{Units: []domain.PresentationUnit{{
			Kind:    domain.UnitError,
			Message: msg,
		}}}
	}
}

func emptyTree() domain.PresentationTree {
	return domain.PresentationTree{Units: []domain.PresentationUnit{{
		Kind:    domain.UnitEmpty,
		Message: NoResultsMessage,
	}}}
}

func recordUnit(i int, rec domain.ResultRecord) domain.PresentationUnit {
	var size float64
	if rec.Size != nil {
		size = *rec.Size
	}
	return domain.PresentationUnit{
		Kind:       domain.UnitRecord,
		Index:      i,
		Title:      text(rec.Title, UnknownTitle),
		Size:       FormatSize(size),
		Resolution: text(rec.Resolution, UnknownLabel),
		Seeders:    count(rec.Seeders),
		Leechers:   count(rec.Leechers),
		Source:     text(rec.Source, UnknownLabel),
		Origin:     text(rec.Origin, UnknownLabel),
		Score:      FormatScore(rec.Score),
		Identifier: rec.CopyableIdentifier(),
	}
}

func text(v *string, placeholder string) string {
	if v == nil {
		return placeholder
	}
	s := Sanitize(strings.TrimSpace(*v))
	if s == "" {
		return placeholder
	}
	return s
}

func count(v *int) string {
	if v == nil {
		return UnknownCount
	}
	return strconv.Itoa(*v)
}

// FormatSize renders a magnitude in gibibytes. It is total: NaN and zero
// map to the placeholder.
func FormatSize(gib float64) string {
	switch {
	case gib == 0 || math.IsNaN(gib):
		return UnknownSize
	case gib < 1:
		mb := math.Round(gib * 1024)
		if mb == 0 {
			mb = 0 // drop the sign of -0
		}
		return strconv.FormatFloat(mb, 'f', 0, 64) + " MB"
	case gib >= 1024:
		return oneDecimal(gib/1024) + " TB"
	default:
		return oneDecimal(gib) + " GB"
	}
}

// FormatScore renders a rank score with one decimal place
func FormatScore(score float64) string {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return "0.0"
	}
	return oneDecimal(score)
}

func oneDecimal(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', 1, 64)
}
