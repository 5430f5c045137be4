// Package stages generates the scripted progress timeline shown before the
// real search request is issued.
package stages

import (
	"context"
	"math"
	"time"
)

// StagingShare is the progress percentage reached when the last stage starts
const StagingShare = 80

// Stage is one scripted status update and the pause that follows it
type Stage struct {
	Label    string
	Duration time.Duration
}

// Step is a stage placed on the timeline
type Step struct {
	Index   int // 1-based
	Total   int
	Percent int
	Stage   Stage
}

// Default returns the fixed stage list. Durations sum to 3s.
func Default() []Stage {
	return []Stage{
		{Label: "Scanning index networks", Duration: 800 * time.Millisecond},
		{Label: "Connecting to search endpoint", Duration: 600 * time.Millisecond},
		{Label: "Negotiating request", Duration: 700 * time.Millisecond},
		{Label: "Extracting record metadata", Duration: 900 * time.Millisecond},
	}
}

// Percent returns round(i/n * StagingShare), clamped to [0,100]
func Percent(i, n int) int {
	if n <= 0 || i <= 0 {
		return 0
	}
	p := int(math.Round(float64(i) / float64(n) * StagingShare))
	if p > 100 {
		return 100
	}
	return p
}

// Steps lays the stages out on the timeline in order
func Steps(stages []Stage) []Step {
	steps := make([]Step, len(stages))
	for i, st := range stages {
		steps[i] = Step{
			Index:   i + 1,
			Total:   len(stages),
			Percent: Percent(i+1, len(stages)),
			Stage:   st,
		}
	}
	return steps
}

// Total returns the summed nominal duration
func Total(stages []Stage) time.Duration {
	var d time.Duration
	for _, st := range stages {
		d += st.Duration
	}
	return d
}

// Sleeper suspends for d or until ctx is done
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the wall-clock Sleeper
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Run emits every step and then sleeps for its duration. Every stage runs
// to completion; only context cancellation stops the timeline early.
func Run(ctx context.Context, stages []Stage, sleep Sleeper, emit func(Step)) error {
	if sleep == nil {
		sleep = Sleep
	}
	for _, step := range Steps(stages) {
		emit(step)
		if err := sleep(ctx, step.Stage.Duration); err != nil {
			return err
		}
	}
	return nil
}
