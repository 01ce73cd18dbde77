// Package intent turns a selection into a generated email: validate, resolve
// metadata, compile the brief, then call the generator under a timeout.
package intent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/prince-Sf/Corelytics/internal/brief"
	"github.com/prince-Sf/Corelytics/internal/platform/logger"
	"github.com/prince-Sf/Corelytics/internal/selection"
	"github.com/prince-Sf/Corelytics/internal/taxonomy"
)

const DefaultTimeout = 60 * time.Second

// GenerateRequest is what the generator receives. An empty Model selects the
// generator's default.
type GenerateRequest struct {
	Model  string
	System string
	Brief  string
}

// Generator is the external text generation capability.
type Generator interface {
	GenerateText(ctx context.Context, req GenerateRequest) (string, error)
}

type Engine struct {
	store   *taxonomy.Store
	gen     Generator
	timeout time.Duration
	log     *logger.Logger
	tracer  trace.Tracer
}

type Option func(*Engine)

func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		if t != nil {
			e.tracer = t
		}
	}
}

func NewEngine(store *taxonomy.Store, gen Generator, opts ...Option) *Engine {
	e := &Engine{
		store:   store,
		gen:     gen,
		timeout: DefaultTimeout,
		log:     logger.NewNop(),
		tracer:  otel.Tracer("github.com/prince-Sf/Corelytics/internal/intent"),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With("service", "IntentEngine")
	return e
}

func (e *Engine) Timeout() time.Duration { return e.timeout }

// Resolution is everything derived from a path before the generator is called.
type Resolution struct {
	Path     selection.Path
	Labels   brief.Labels
	Metadata taxonomy.Resolved
	Brief    brief.Brief
}

// Metadata describes a generated email for display and audit.
type Metadata struct {
	Domain               string       `json:"domain"`
	Recipient            string       `json:"recipient"`
	Category             string       `json:"category"`
	Scenario             *string      `json:"scenario,omitempty"`
	Labels               brief.Labels `json:"labels"`
	IntentPath           string       `json:"intent_path"`
	UsedCategoryMetadata bool         `json:"used_category_metadata"`
	taxonomy.Resolved
	Archetype brief.Archetype `json:"archetype"`
	Model     string          `json:"model,omitempty"`
}

type Result struct {
	Text     string
	Brief    brief.Brief
	Metadata Metadata
}

// Resolve validates p against the taxonomy and compiles its brief. A scenario
// under a category without children is dropped.
func (e *Engine) Resolve(p selection.Path) (Resolution, error) {
	if !p.IsResolvable() {
		return Resolution{}, fmt.Errorf("%w: path %q", brief.ErrIncompleteSelection, p.String())
	}
	norm, err := p.Normalize(e.store)
	if err != nil {
		return Resolution{}, err
	}
	lineage, err := e.store.Lineage(norm.IDs())
	if err != nil {
		return Resolution{}, err
	}

	labels := brief.Labels{
		Domain:    lineage[selection.LevelDomain].Label,
		Recipient: lineage[selection.LevelRecipient].Label,
		Category:  lineage[selection.LevelCategory].Label,
	}
	if norm.Depth() > int(selection.LevelScenario) {
		labels.Scenario = lineage[selection.LevelScenario].Label
	}

	resolved, err := e.store.ResolveMetadata(norm.IDs())
	if err != nil {
		return Resolution{}, err
	}
	b, err := brief.Compile(brief.Input{Path: norm, Labels: labels, Metadata: resolved})
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Path: norm, Labels: labels, Metadata: resolved, Brief: b}, nil
}

// Generate resolves p and asks the generator's default model for the email.
func (e *Engine) Generate(ctx context.Context, p selection.Path) (Result, error) {
	return e.GenerateWithModel(ctx, p, "")
}

func (e *Engine) GenerateWithModel(ctx context.Context, p selection.Path, model string) (Result, error) {
	ctx, span := e.tracer.Start(ctx, "intent.generate", trace.WithAttributes(
		attribute.String("corelytics.path", p.String()),
		attribute.String("corelytics.model", model),
	))
	defer span.End()

	res, err := e.Resolve(p)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "resolve")
		return Result{}, err
	}
	span.SetAttributes(
		attribute.String("corelytics.archetype", string(res.Brief.Archetype)),
		attribute.String("corelytics.pressure", string(res.Metadata.Pressure)),
		attribute.String("corelytics.brief_fingerprint", res.Brief.Fingerprint),
	)
	e.log.Debug("brief compiled",
		"path", res.Path.String(),
		"archetype", res.Brief.Archetype,
		"fingerprint", res.Brief.Fingerprint,
	)

	text, err := e.callGenerator(ctx, GenerateRequest{
		Model:  model,
		System: brief.SystemPrompt(),
		Brief:  res.Brief.Text,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate")
		return Result{}, err
	}

	return Result{
		Text:     text,
		Brief:    res.Brief,
		Metadata: res.ResponseMetadata(model),
	}, nil
}

type genResult struct {
	text string
	err  error
}

// callGenerator stops waiting once the deadline fires even if the generator
// ignores cancellation; the buffered channel lets its goroutine finish later.
func (e *Engine) callGenerator(ctx context.Context, req GenerateRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	done := make(chan genResult, 1)
	go func() {
		text, err := e.gen.GenerateText(ctx, req)
		done <- genResult{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		cause := ctx.Err()
		if errors.Is(cause, context.DeadlineExceeded) {
			cause = fmt.Errorf("no response within %s: %w", e.timeout, cause)
		}
		return "", &GenerationFailedError{Model: req.Model, Cause: cause}
	case r := <-done:
		if r.err != nil {
			return "", &GenerationFailedError{Model: req.Model, Cause: r.err}
		}
		if strings.TrimSpace(r.text) == "" {
			return "", &GenerationFailedError{Model: req.Model, Cause: errors.New("empty response")}
		}
		return r.text, nil
	}
}

// ResponseMetadata describes r as returned to callers alongside generated text.
func (r Resolution) ResponseMetadata(model string) Metadata {
	m := Metadata{
		Domain:               r.Path.Domain(),
		Recipient:            r.Path.Recipient(),
		Category:             r.Path.Category(),
		Labels:               r.Labels,
		IntentPath:           selection.Summary(r.Labels.Domain, r.Labels.Recipient, r.Labels.Category, r.Labels.Scenario),
		UsedCategoryMetadata: r.Path.Scenario() == "",
		Resolved:             r.Metadata,
		Archetype:            r.Brief.Archetype,
		Model:                model,
	}
	if s := r.Path.Scenario(); s != "" {
		m.Scenario = &s
	}
	return m
}
