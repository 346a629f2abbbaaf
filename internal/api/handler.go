package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/johnnie2785/comedogenic-tester/internal/catalog"
	"github.com/johnnie2785/comedogenic-tester/internal/domain"
	"github.com/johnnie2785/comedogenic-tester/internal/modifier"
	"github.com/johnnie2785/comedogenic-tester/internal/repository"
	"github.com/johnnie2785/comedogenic-tester/internal/scorer"
)

// Handler holds dependencies for API handlers.
type Handler struct {
	catalogs *catalog.Manager
	scorer   *scorer.Scorer
	store    domain.CatalogStore
	cache    domain.Cache
	engine   *modifier.Engine
	version  string
}

// NewHandler creates a new API handler. store, cache, and engine may be
// nil; the corresponding endpoints respond 503.
func NewHandler(catalogs *catalog.Manager, sc *scorer.Scorer, store domain.CatalogStore, cache domain.Cache, engine *modifier.Engine, version string) *Handler {
	return &Handler{
		catalogs: catalogs,
		scorer:   sc,
		store:    store,
		cache:    cache,
		engine:   engine,
		version:  version,
	}
}

// AnalyzeResponse is the response for POST /analyze. Result is null when
// the input parsed to zero ingredients; that carries the "nothing to
// show" signal, not an error.
type AnalyzeResponse struct {
	Result  *domain.AnalysisResult `json:"result"`
	Message string                 `json:"message,omitempty"`
}

// Analyze handles POST /analyze requests.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid JSON request body",
		})
		return
	}

	result := h.scorer.Analyze(ctx, &req)
	if result == nil {
		writeJSON(w, http.StatusOK, AnalyzeResponse{
			Result:  nil,
			Message: "No ingredients provided.",
		})
		return
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{Result: result})
}

// GetCatalog handles GET /catalog: size plus entry listing.
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	cat := h.catalogs.Current()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":   cat.Len(),
		"entries": cat.Entries(),
	})
}

// ResolveIngredient handles GET /catalog/resolve?q=<token>.
func (h *Handler) ResolveIngredient(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "query parameter q is required",
		})
		return
	}

	entry := h.catalogs.Resolve(r.Context(), query)
	writeJSON(w, http.StatusOK, entry)
}

// ReloadCatalog handles POST /catalog/reload.
func (h *Handler) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogs.Reload(r.Context()); err != nil {
		slog.Error("catalog reload failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "catalog reload failed",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "reloaded",
		"count":  h.catalogs.Len(),
	})
}

// ListModifiers returns the loaded custom modifier rules.
func (h *Handler) ListModifiers(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "modifier engine not available",
		})
		return
	}

	rules := h.engine.GetLoadedRules()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"modifiers": rules,
		"count":     len(rules),
	})
}

// GetModifier retrieves a single modifier rule from the store.
func (h *Handler) GetModifier(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "catalog store not available",
		})
		return
	}

	id := chi.URLParam(r, "id")
	cfg, err := h.store.GetModifier(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{
				"error": "modifier not found",
			})
			return
		}
		slog.Error("failed to get modifier", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to get modifier",
		})
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}

// CreateModifier validates, persists, and loads a custom modifier rule.
func (h *Handler) CreateModifier(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil || h.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "modifier engine not available",
		})
		return
	}

	var cfg domain.ModifierConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid JSON request body",
		})
		return
	}
	if cfg.ID == "" || cfg.Expression == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "id and expression are required",
		})
		return
	}

	if err := h.engine.ValidateRule(&cfg); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
		return
	}

	if err := h.store.SaveModifier(r.Context(), &cfg); err != nil {
		slog.Error("failed to save modifier", "id", cfg.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to save modifier",
		})
		return
	}

	if cfg.Enabled {
		if err := h.engine.LoadRule(&cfg); err != nil {
			slog.Error("failed to load modifier", "id", cfg.ID, "error", err)
		}
	}

	writeJSON(w, http.StatusCreated, &cfg)
}

// ReloadModifiers re-reads modifier rules from the store into the engine.
func (h *Handler) ReloadModifiers(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil || h.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "modifier engine not available",
		})
		return
	}

	configs, err := h.store.ListModifiers(r.Context())
	if err != nil {
		slog.Error("failed to list modifiers", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to list modifiers",
		})
		return
	}

	if err := h.engine.ReloadRules(configs); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "reloaded",
		"count":  h.engine.RulesCount(),
	})
}

// Health returns server health status.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"

	if h.store != nil {
		if err := h.store.Ping(r.Context()); err != nil {
			status = "degraded"
		}
	}
	if h.cache != nil {
		if err := h.cache.Ping(r.Context()); err != nil {
			status = "degraded"
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  status,
		"version": h.version,
	})
}

// Ready returns whether the server is ready to accept traffic.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"ready": "true",
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
