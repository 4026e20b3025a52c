// Package handler wires the time log endpoints to the service.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"worklog/internal/timelog/authz"
	"worklog/internal/timelog/models"
	dErrors "worklog/pkg/domain-errors"
	"worklog/pkg/platform/httputil"
	"worklog/pkg/requestcontext"
)

// Service defines the time log operations the handlers call.
type Service interface {
	Create(ctx context.Context, ownerID string, req models.CreateTimeLogRequest) (*models.TimeLog, error)
	GetByID(ctx context.Context, id string, caller requestcontext.Principal) (*models.TimeLog, error)
	ListMine(ctx context.Context, ownerID string, from, to *models.Date) ([]*models.TimeLog, error)
	ListAll(ctx context.Context, from, to *models.Date) ([]*models.TimeLog, error)
	ListForWorkItem(ctx context.Context, workItemID string) ([]*models.TimeLog, error)
	Update(ctx context.Context, id string, caller requestcontext.Principal, patch models.UpdateTimeLogRequest) (*models.TimeLog, error)
	Delete(ctx context.Context, id string, caller requestcontext.Principal) error
	Summarize(ctx context.Context, ownerID, periodName string, ref models.Date) (*models.SummaryResponse, error)
	Statistics(ctx context.Context, ownerID string) (*models.StatisticsResponse, error)
	TotalHours(ctx context.Context, ownerID string) (*models.TotalHoursResponse, error)
}

// Handler exposes the time log HTTP surface.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a time log handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the time log endpoints on the router. All routes assume the
// router has already required an authenticated principal; /all additionally
// requires an elevated role, which the router enforces.
func (h *Handler) Register(r chi.Router) {
	r.Post("/time-logs", h.HandleCreate)
	r.Get("/time-logs", h.HandleListMine)
	r.Get("/time-logs/summary", h.HandleSummary)
	r.Get("/time-logs/stats", h.HandleStatistics)
	r.Get("/time-logs/total", h.HandleTotalHours)
	r.Get("/time-logs/service/{workItemID}", h.HandleListForWorkItem)
	r.Get("/time-logs/project/{workItemID}", h.HandleListForWorkItem)
	r.Get("/time-logs/{logID}", h.HandleGet)
	r.Put("/time-logs/{logID}", h.HandleUpdate)
	r.Delete("/time-logs/{logID}", h.HandleDelete)
}

// RegisterAdmin mounts the elevated-only listing. Kept separate so the router
// can wrap it in a role requirement.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/time-logs/all", h.HandleListAll)
}

// HandleCreate handles POST /time-logs requests.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller := requestcontext.CallerPrincipal(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[models.CreateTimeLogRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	today := models.DateOf(requestcontext.Now(ctx))
	if err := req.Validate(today); err != nil {
		httputil.WriteError(w, err)
		return
	}

	log, err := h.service.Create(ctx, caller.ID, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "time log creation failed",
			"request_id", requestID,
			"employee_id", caller.ID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "time log created",
		"request_id", requestID,
		"log_id", log.ID,
		"employee_id", caller.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, log)
}

// HandleListMine handles GET /time-logs requests for the caller's own
// entries. from and to query parameters bound the range inclusively; both
// must be present for the filter to apply.
func (h *Handler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := requestcontext.CallerPrincipal(ctx)

	from, to, err := dateRangeParams(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	logs, err := h.service.ListMine(ctx, caller.ID, from, to)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, logs)
}

// HandleListAll handles GET /time-logs/all requests.
func (h *Handler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	from, to, err := dateRangeParams(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	logs, err := h.service.ListAll(ctx, from, to)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, logs)
}

// HandleListForWorkItem handles GET /time-logs/service/{id} and
// GET /time-logs/project/{id}; both resolve through the same association
// lookup.
func (h *Handler) HandleListForWorkItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	workItemID := strings.TrimSpace(chi.URLParam(r, "workItemID"))
	if workItemID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "work item id is required"))
		return
	}

	logs, err := h.service.ListForWorkItem(ctx, workItemID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, logs)
}

// HandleGet handles GET /time-logs/{logID} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := requestcontext.CallerPrincipal(ctx)

	log, err := h.service.GetByID(ctx, chi.URLParam(r, "logID"), caller)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, log)
}

// HandleUpdate handles PUT /time-logs/{logID} requests.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller := requestcontext.CallerPrincipal(ctx)

	patch, ok := httputil.DecodeAndPrepare[models.UpdateTimeLogRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	today := models.DateOf(requestcontext.Now(ctx))
	if err := patch.Validate(today); err != nil {
		httputil.WriteError(w, err)
		return
	}

	log, err := h.service.Update(ctx, chi.URLParam(r, "logID"), caller, patch)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "time log updated",
		"request_id", requestID,
		"log_id", log.ID,
		"employee_id", caller.ID,
	)
	httputil.WriteJSON(w, http.StatusOK, log)
}

// HandleDelete handles DELETE /time-logs/{logID} requests.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller := requestcontext.CallerPrincipal(ctx)
	logID := chi.URLParam(r, "logID")

	if err := h.service.Delete(ctx, logID, caller); err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "time log deleted",
		"request_id", requestID,
		"log_id", logID,
		"employee_id", caller.ID,
	)
	w.WriteHeader(http.StatusNoContent)
}

// HandleSummary handles GET /time-logs/summary requests. period selects the
// aggregation window; date anchors it and defaults to today.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := requestcontext.CallerPrincipal(ctx)

	periodName := r.URL.Query().Get("period")
	if periodName == "" {
		periodName = "weekly"
	}

	ref := models.DateOf(requestcontext.Now(ctx))
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := models.ParseDate(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "date must be formatted YYYY-MM-DD"))
			return
		}
		ref = parsed
	}

	summary, err := h.service.Summarize(ctx, caller.ID, periodName, ref)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summary)
}

// HandleStatistics handles GET /time-logs/stats requests.
func (h *Handler) HandleStatistics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := requestcontext.CallerPrincipal(ctx)

	stats, err := h.service.Statistics(ctx, caller.ID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}

// HandleTotalHours handles GET /time-logs/total requests.
func (h *Handler) HandleTotalHours(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := requestcontext.CallerPrincipal(ctx)

	total, err := h.service.TotalHours(ctx, caller.ID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, total)
}

// ElevatedRoles lists the role literals the router accepts for /all.
func ElevatedRoles() []string {
	return authz.ElevatedRoles()
}

func dateRangeParams(r *http.Request) (from, to *models.Date, err error) {
	q := r.URL.Query()
	if raw := q.Get("from"); raw != "" {
		d, perr := models.ParseDate(raw)
		if perr != nil {
			return nil, nil, dErrors.New(dErrors.CodeBadRequest, "from must be formatted YYYY-MM-DD")
		}
		from = &d
	}
	if raw := q.Get("to"); raw != "" {
		d, perr := models.ParseDate(raw)
		if perr != nil {
			return nil, nil, dErrors.New(dErrors.CodeBadRequest, "to must be formatted YYYY-MM-DD")
		}
		to = &d
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, dErrors.New(dErrors.CodeBadRequest, "to must not precede from")
	}
	return from, to, nil
}
