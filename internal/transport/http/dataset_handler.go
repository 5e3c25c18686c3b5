package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "aircli/internal/errors"
	"aircli/pkg/contracts/domain"
)

// DatasetHandler handles dataset-related HTTP requests.
type DatasetHandler struct {
	service *DatasetService
	logger  *slog.Logger
}

// NewDatasetHandler creates a new dataset handler.
func NewDatasetHandler(service *DatasetService, logger *slog.Logger) *DatasetHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetHandler{
		service: service,
		logger:  logger.With(slog.String("component", "dataset_handler")),
	}
}

// Routes returns the dataset routes.
func (h *DatasetHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/dataset", h.GetStatus)
	r.Post("/dataset/load", h.LoadDataset)

	r.Route("/labels/{category}", func(r chi.Router) {
		r.Use(h.CategoryCtx)
		r.Get("/", h.GetLabels)
		r.Post("/{label}/toggle", h.ToggleLabel)
	})

	r.Get("/stats/cross", h.GetCrossTabStatistics)
	r.Route("/stats/field/{category}", func(r chi.Router) {
		r.Use(h.CategoryCtx)
		r.Get("/{label}", h.GetTableStatistics)
	})

	r.Get("/reports/cross", h.GetCrossTableReport)
	r.Route("/reports/field/{category}", func(r chi.Router) {
		r.Use(h.CategoryCtx)
		r.Get("/", h.GetFieldTableReport)
	})

	return r
}

// categoryCtxKey carries the parsed category through the request context.
type categoryCtxKey struct{}

// CategoryCtx middleware parses and validates the {category} URL parameter.
func (h *DatasetHandler) CategoryCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cat, err := domain.ParseCategory(chi.URLParam(r, "category"))
		if err != nil {
			h.renderError(w, r, apierrors.NewValidationError("category must be zip_code or time_of_day"))
			return
		}
		ctx := context.WithValue(r.Context(), categoryCtxKey{}, cat)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func categoryFromCtx(ctx context.Context) domain.Category {
	cat, _ := ctx.Value(categoryCtxKey{}).(domain.Category)
	return cat
}

// GetStatus handles GET /dataset
func (h *DatasetHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Status())
}

// LoadRequest is the payload for POST /dataset/load.
type LoadRequest struct {
	File   string `json:"file"`
	Format string `json:"format,omitempty"`
}

// LoadResponse reports the outcome of a load.
type LoadResponse struct {
	Success bool `json:"success"`
	Records int  `json:"records"`
}

// LoadDataset handles POST /dataset/load
func (h *DatasetHandler) LoadDataset(w http.ResponseWriter, r *http.Request) {
	var req LoadRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.renderError(w, r, apierrors.NewValidationError("invalid request body"))
		return
	}

	count, err := h.service.Load(r.Context(), req.File, req.Format)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, LoadResponse{Success: true, Records: count})
}

// LabelsResponse lists a category's labels in registry order.
type LabelsResponse struct {
	Category string   `json:"category"`
	Active   bool     `json:"active_only"`
	Labels   []string `json:"labels"`
}

// GetLabels handles GET /labels/{category}?active=true
func (h *DatasetHandler) GetLabels(w http.ResponseWriter, r *http.Request) {
	cat := categoryFromCtx(r.Context())
	activeOnly := r.URL.Query().Get("active") == "true"

	labels, err := h.service.Labels(cat, activeOnly)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, LabelsResponse{
		Category: cat.String(),
		Active:   activeOnly,
		Labels:   labels,
	})
}

// ToggleLabel handles POST /labels/{category}/{label}/toggle
func (h *DatasetHandler) ToggleLabel(w http.ResponseWriter, r *http.Request) {
	cat := categoryFromCtx(r.Context())
	label := chi.URLParam(r, "label")

	if err := h.service.ToggleLabel(cat, label); err != nil {
		h.renderError(w, r, err)
		return
	}

	active, err := h.service.Labels(cat, true)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, LabelsResponse{
		Category: cat.String(),
		Active:   true,
		Labels:   active,
	})
}

// GetCrossTabStatistics handles GET /stats/cross?zip=..&time=..
func (h *DatasetHandler) GetCrossTabStatistics(w http.ResponseWriter, r *http.Request) {
	zip := r.URL.Query().Get("zip")
	timeOfDay := r.URL.Query().Get("time")
	if zip == "" || timeOfDay == "" {
		h.renderError(w, r, apierrors.NewValidationError("zip and time query parameters are required"))
		return
	}

	summary, err := h.service.CrossTabStatistics(zip, timeOfDay)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// GetTableStatistics handles GET /stats/field/{category}/{label}
func (h *DatasetHandler) GetTableStatistics(w http.ResponseWriter, r *http.Request) {
	cat := categoryFromCtx(r.Context())
	label := chi.URLParam(r, "label")

	summary, err := h.service.TableStatistics(cat, label)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// GetCrossTableReport handles GET /reports/cross?stat=min|avg|max
func (h *DatasetHandler) GetCrossTableReport(w http.ResponseWriter, r *http.Request) {
	stat := domain.StatAvg
	if raw := r.URL.Query().Get("stat"); raw != "" {
		parsed, err := domain.ParseStat(raw)
		if err != nil {
			h.renderError(w, r, apierrors.NewValidationError("stat must be min, avg or max"))
			return
		}
		stat = parsed
	}

	report, err := h.service.RenderCrossTable(stat)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.PlainText(w, r, report)
}

// GetFieldTableReport handles GET /reports/field/{category}
func (h *DatasetHandler) GetFieldTableReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.RenderFieldTable(categoryFromCtx(r.Context()))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.PlainText(w, r, report)
}

func (h *DatasetHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := apierrors.FromError(err)
	if apiErr.StatusCode >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
	}
	render.Status(r, apiErr.StatusCode)
	render.JSON(w, r, apierrors.NewErrorResponse(apiErr))
}
