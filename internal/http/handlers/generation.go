package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/prince-Sf/Corelytics/internal/http/response"
	"github.com/prince-Sf/Corelytics/internal/platform/apierr"
	"github.com/prince-Sf/Corelytics/internal/platform/ctxutil"
	"github.com/prince-Sf/Corelytics/internal/platform/logger"
	"github.com/prince-Sf/Corelytics/internal/services"
)

type GenerationHandler struct {
	gen services.GenerationService
	log *logger.Logger
}

func NewGenerationHandler(gen services.GenerationService, log *logger.Logger) *GenerationHandler {
	return &GenerationHandler{gen: gen, log: log.With("handler", "GenerationHandler")}
}

// POST /api/generate
// body: { "domain": "...", "recipient": "...", "category": "...", "scenario"?: "...", "model"?: "..." }
func (h *GenerationHandler) Generate(c *gin.Context) {
	var req services.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAPIError(c, apierr.BadRequest(apierr.CodeInvalidRequest, err))
		return
	}
	out, err := h.gen.Generate(c.Request.Context(), req)
	if err != nil {
		h.fail(c, req, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /api/brief
// Same body as /api/generate; returns the compiled brief without calling a provider.
func (h *GenerationHandler) Brief(c *gin.Context) {
	var req services.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAPIError(c, apierr.BadRequest(apierr.CodeInvalidRequest, err))
		return
	}
	out, err := h.gen.Brief(req)
	if err != nil {
		h.fail(c, req, err)
		return
	}
	response.RespondOK(c, out)
}

func (h *GenerationHandler) fail(c *gin.Context, req services.GenerateRequest, err error) {
	ae := response.RespondAPIError(c, err)
	fields := []interface{}{
		"code", ae.Code,
		"domain", req.Domain,
		"recipient", req.Recipient,
		"category", req.Category,
		"scenario", req.Scenario,
		"model", req.Model,
		"request_id", ctxutil.RequestID(c.Request.Context()),
		"error", err,
	}
	if ae.Status >= 500 {
		h.log.Error("generation failed", fields...)
		return
	}
	h.log.Warn("generation rejected", fields...)
}
