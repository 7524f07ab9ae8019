package domain

import (
	"context"
	"encoding/json"
	"time"
)

const ContextProfileKey = "evaluationProfile"

// ContextWithProfile threads a profile through the evaluation pipeline so
// each stage can record its elapsed time into it.
func ContextWithProfile(ctx context.Context, profile *Profile) context.Context {
	return context.WithValue(ctx, ContextProfileKey, profile)
}

// ProfileFromContext returns the profile carried by ctx, or nil when the
// caller did not ask for timings. A nil profile is safe: every method on
// it is a no-op.
func ProfileFromContext(ctx context.Context) *Profile {
	profile, _ := ctx.Value(ContextProfileKey).(*Profile)
	return profile
}

// Span is one timed pipeline stage.
type Span struct {
	Name      string `json:"name"`
	ElapsedMs int64  `json:"elapsedMs"`

	startTs time.Time
}

// Profile accumulates the stage timings of one evaluation. It is not safe
// for concurrent use; batch evaluation gives every candidate its own.
type Profile struct {
	Spans   []*Span `json:"spans"`
	TotalMs int64   `json:"totalMs"`

	startTs time.Time
}

func NewProfile() *Profile {
	return &Profile{
		Spans:   []*Span{},
		startTs: time.Now(),
	}
}

// StartSpan opens a named span and returns its closer.
func (p *Profile) StartSpan(name string) func() {
	if p == nil {
		return func() {}
	}
	span := &Span{
		Name:    name,
		startTs: time.Now(),
	}
	p.Spans = append(p.Spans, span)
	return func() {
		span.ElapsedMs = time.Since(span.startTs).Milliseconds()
	}
}

// End stamps the total elapsed time. Repeat calls keep the first stamp.
func (p *Profile) End() {
	if p == nil || p.TotalMs != 0 {
		return
	}
	p.TotalMs = time.Since(p.startTs).Milliseconds()
}

func (p *Profile) ToJsonBytes() ([]byte, error) {
	bytes, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return bytes, nil
}
