package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"

	"github.com/prince-Sf/Corelytics/internal/brief"
	"github.com/prince-Sf/Corelytics/internal/data/repos/audit"
	"github.com/prince-Sf/Corelytics/internal/domain"
	"github.com/prince-Sf/Corelytics/internal/intent"
	"github.com/prince-Sf/Corelytics/internal/platform/ctxutil"
	"github.com/prince-Sf/Corelytics/internal/platform/dbctx"
	"github.com/prince-Sf/Corelytics/internal/platform/logger"
	"github.com/prince-Sf/Corelytics/internal/selection"
)

// GenerateRequest is the body of a generate or brief call. Scenario and Model
// are optional.
type GenerateRequest struct {
	Domain    string `json:"domain"`
	Recipient string `json:"recipient"`
	Category  string `json:"category"`
	Scenario  string `json:"scenario,omitempty"`
	Model     string `json:"model,omitempty"`
}

func (r GenerateRequest) Path() (selection.Path, error) {
	return selection.FromIDs(r.Domain, r.Recipient, r.Category, r.Scenario)
}

type GenerateResponse struct {
	Email    string          `json:"email"`
	Metadata intent.Metadata `json:"metadata"`
}

type BriefResponse struct {
	Brief    brief.Brief     `json:"brief"`
	System   string          `json:"system"`
	Metadata intent.Metadata `json:"metadata"`
}

// ModelResolver maps a requested model id to a configured one; "" selects the
// default.
type ModelResolver interface {
	ResolveModel(model string) (string, error)
}

type GenerationService interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
	Brief(req GenerateRequest) (*BriefResponse, error)
}

type generationService struct {
	engine    *intent.Engine
	models    ModelResolver
	auditRepo audit.Repo
	log       *logger.Logger
}

// NewGenerationService wires the intent engine to a model resolver. auditRepo
// may be nil, which disables the audit trail.
func NewGenerationService(engine *intent.Engine, models ModelResolver, auditRepo audit.Repo, log *logger.Logger) GenerationService {
	return &generationService{
		engine:    engine,
		models:    models,
		auditRepo: auditRepo,
		log:       log.With("service", "GenerationService"),
	}
}

func (s *generationService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	p, err := req.Path()
	if err != nil {
		return nil, err
	}
	model, err := s.models.ResolveModel(req.Model)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := s.engine.GenerateWithModel(ctx, p, model)
	latency := time.Since(start)

	var genErr *intent.GenerationFailedError
	switch {
	case err == nil:
		s.recordAudit(ctx, p, model, res.Brief, res.Metadata, latency, nil)
	case errors.As(err, &genErr):
		// Failed attempts are recorded too.
		if r, rerr := s.engine.Resolve(p); rerr == nil {
			s.recordAudit(ctx, r.Path, model, r.Brief, r.ResponseMetadata(model), latency, err)
		}
		return nil, err
	default:
		return nil, err
	}

	s.log.Info("email generated",
		"path", p.String(),
		"model", model,
		"archetype", res.Metadata.Archetype,
		"latency_ms", latency.Milliseconds(),
		"request_id", ctxutil.RequestID(ctx),
	)
	return &GenerateResponse{Email: res.Text, Metadata: res.Metadata}, nil
}

func (s *generationService) Brief(req GenerateRequest) (*BriefResponse, error) {
	p, err := req.Path()
	if err != nil {
		return nil, err
	}
	res, err := s.engine.Resolve(p)
	if err != nil {
		return nil, err
	}
	return &BriefResponse{
		Brief:    res.Brief,
		System:   brief.SystemPrompt(),
		Metadata: res.ResponseMetadata(""),
	}, nil
}

// recordAudit stores what was requested. The generated text is never written.
func (s *generationService) recordAudit(ctx context.Context, p selection.Path, model string, b brief.Brief, md intent.Metadata, latency time.Duration, genErr error) {
	if s.auditRepo == nil {
		return
	}
	sources, err := json.Marshal(md.Sources)
	if err != nil {
		sources = []byte("{}")
	}
	row := &domain.GenerationAudit{
		RequestID:        ctxutil.RequestID(ctx),
		DomainID:         p.Domain(),
		RecipientID:      p.Recipient(),
		CategoryID:       p.Category(),
		ScenarioID:       md.Scenario,
		Archetype:        string(b.Archetype),
		Pressure:         string(md.Pressure),
		Model:            model,
		Success:          genErr == nil,
		LatencyMS:        latency.Milliseconds(),
		BriefFingerprint: b.Fingerprint,
		Sources:          datatypes.JSON(sources),
		CreatedAt:        time.Now().UTC(),
	}
	if genErr != nil {
		row.Error = genErr.Error()
	}
	// The request context may already be past its deadline on timeouts.
	auditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.auditRepo.Create(dbctx.Context{Ctx: auditCtx}, row); err != nil {
		s.log.Warn("audit write failed", "error", err, "path", p.String(), "model", model)
	}
}
