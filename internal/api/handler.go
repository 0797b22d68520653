package api

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/cutlistpro/cutlist/internal/costing"
	"github.com/cutlistpro/cutlist/internal/engine"
	"github.com/cutlistpro/cutlist/internal/model"
)

// Handler exposes the optimization engine and cost estimator over JSON.
// It owns no mutable state beyond the read-only material catalog and the
// server-side defaults.
type Handler struct {
	catalog        []model.Material
	defaultConfig  engine.Config
	defaultFactors costing.Factors
	logger         *zap.Logger
	clock          func() time.Time
}

// NewHandler constructs a Handler with the provided catalog and defaults.
func NewHandler(catalog []model.Material, cfg engine.Config, factors costing.Factors, logger *zap.Logger) *Handler {
	return &Handler{
		catalog:        catalog,
		defaultConfig:  cfg,
		defaultFactors: factors,
		logger:         logger,
		clock:          func() time.Time { return time.Now().UTC() },
	}
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type optimizeRequest struct {
	Parts     []model.PartSpec `json:"parts"`
	Materials []model.Material `json:"materials,omitempty"`
	Config    *engine.Config   `json:"config,omitempty"`
}

type estimateRequest struct {
	Plan      model.CuttingPlan `json:"plan"`
	Materials []model.Material  `json:"materials,omitempty"`
	Pricing   *costing.Factors  `json:"pricing,omitempty"`
}

type quoteRequest struct {
	Parts     []model.PartSpec `json:"parts"`
	Materials []model.Material `json:"materials,omitempty"`
	Config    *engine.Config   `json:"config,omitempty"`
	Pricing   *costing.Factors `json:"pricing,omitempty"`
}

type quoteResponse struct {
	Plan model.CuttingPlan     `json:"plan"`
	Cost costing.CostBreakdown `json:"cost"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, healthResponse{Status: "ok", Timestamp: h.clock()})
}

func (h *Handler) handleMaterials(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.catalog)
}

func (h *Handler) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.badRequest(w, r, "unable to parse JSON payload", err)
		return
	}
	if len(req.Parts) == 0 {
		h.badRequest(w, r, "parts must contain at least one part spec", nil)
		return
	}

	plan, err := engine.Optimize(r.Context(), req.Parts, h.materialsFor(req.Materials), h.configFor(req.Config))
	if err != nil {
		h.badRequest(w, r, err.Error(), err)
		return
	}

	render.JSON(w, r, plan)
}

func (h *Handler) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.badRequest(w, r, "unable to parse JSON payload", err)
		return
	}

	breakdown, err := costing.Estimate(req.Plan, h.materialsFor(req.Materials), h.factorsFor(req.Pricing))
	if err != nil {
		h.badRequest(w, r, err.Error(), err)
		return
	}

	render.JSON(w, r, breakdown)
}

func (h *Handler) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.badRequest(w, r, "unable to parse JSON payload", err)
		return
	}
	if len(req.Parts) == 0 {
		h.badRequest(w, r, "parts must contain at least one part spec", nil)
		return
	}

	materials := h.materialsFor(req.Materials)

	plan, err := engine.Optimize(r.Context(), req.Parts, materials, h.configFor(req.Config))
	if err != nil {
		h.badRequest(w, r, err.Error(), err)
		return
	}

	breakdown, err := costing.Estimate(plan, materials, h.factorsFor(req.Pricing))
	if err != nil {
		h.badRequest(w, r, err.Error(), err)
		return
	}

	render.JSON(w, r, quoteResponse{Plan: plan, Cost: breakdown})
}

func (h *Handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.badRequest(w, r, "unable to parse JSON payload", err)
		return
	}
	if len(req.Parts) == 0 {
		h.badRequest(w, r, "parts must contain at least one part spec", nil)
		return
	}

	scenarios := engine.BuildStrategyScenarios(h.configFor(req.Config))
	results, err := engine.CompareScenarios(r.Context(), scenarios, req.Parts, h.materialsFor(req.Materials))
	if err != nil {
		h.badRequest(w, r, err.Error(), err)
		return
	}

	render.JSON(w, r, results)
}

// materialsFor returns the request's inline catalog when present, falling
// back to the server catalog.
func (h *Handler) materialsFor(inline []model.Material) []model.Material {
	if len(inline) > 0 {
		return inline
	}
	return h.catalog
}

func (h *Handler) configFor(inline *engine.Config) engine.Config {
	if inline != nil {
		return *inline
	}
	return h.defaultConfig
}

func (h *Handler) factorsFor(inline *costing.Factors) costing.Factors {
	if inline != nil {
		return *inline
	}
	return h.defaultFactors
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, message string, err error) {
	if err != nil {
		h.logger.Warn("request rejected", zap.String("path", r.URL.Path), zap.Error(err))
	}
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, errorResponse{Error: "Invalid request", Details: message})
}
