/*
handlers.go - HTTP API handlers for the leave engine

PURPOSE:
  Exposes the leave engine via REST. Handles HTTP request/response, JSON
  serialization, and delegates to domain logic.

ENDPOINTS:
  Auth:
    POST   /api/auth/login              Authenticate, returns session token
    POST   /api/auth/register           Create an employee account
    GET    /api/auth/me                 Current user

  Requests:
    POST   /api/requests                Submit a leave request
    POST   /api/requests/validate       Pre-validate a draft
    GET    /api/requests                Caller's requests, newest-first
    GET    /api/requests/all            Every request (approvers)
    GET    /api/requests/pending        Pending queue (approvers)
    POST   /api/requests/{id}/approve   Approve (approvers)
    POST   /api/requests/{id}/reject    Reject (approvers)

  Analytics:
    GET    /api/analytics/absence-ratio     Per-type percentage breakdown
    GET    /api/analytics/departments       Department rollup
    GET    /api/analytics/summary           Year summary
    GET    /api/analytics/export            XLSX download

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed input, validation violations
  - 401/403: Missing session / insufficient role
  - 404: Request id not found
  - 409: Stale transition (request already decided)
  - 500: Internal errors
  A persistence save failure never fails the mutation; the response
  carries persisted=false instead.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/edhr/leave-engine/identity"
	"github.com/edhr/leave-engine/leave"
	"github.com/edhr/leave-engine/report"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     *leave.Store
	Directory *identity.Directory
	Sessions  *identity.Sessions
	Logger    zerolog.Logger

	validate *validator.Validate
}

// NewHandler creates a new handler with the given dependencies.
func NewHandler(store *leave.Store, directory *identity.Directory, sessions *identity.Sessions, logger zerolog.Logger) *Handler {
	return &Handler{
		Store:     store,
		Directory: directory,
		Sessions:  sessions,
		Logger:    logger.With().Str("component", "api").Logger(),
		validate:  validator.New(),
	}
}

// =============================================================================
// AUTH HANDLERS
// =============================================================================

// Login authenticates and issues a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.Directory.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}

	token, err := h.Sessions.Issue(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to issue session", err)
		return
	}

	writeJSON(w, http.StatusOK, SessionResponse{Token: token, User: toUserDTO(user)})
}

// Register creates an employee account and logs it in.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.Directory.Register(req.Name, req.Email, req.Password, req.Department)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrEmailTaken):
			writeError(w, http.StatusConflict, "Email already registered", nil)
		case errors.Is(err, identity.ErrWeakPassword):
			writeError(w, http.StatusBadRequest, "Password must be at least 6 characters", nil)
		default:
			writeError(w, http.StatusInternalServerError, "Failed to register", err)
		}
		return
	}

	token, err := h.Sessions.Issue(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to issue session", err)
		return
	}

	writeJSON(w, http.StatusCreated, SessionResponse{Token: token, User: toUserDTO(user)})
}

// Me returns the authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing session", nil)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(user))
}

// =============================================================================
// REQUEST HANDLERS
// =============================================================================

// ValidateDraft pre-validates a draft without submitting it, so the form
// can display every problem at once.
func (h *Handler) ValidateDraft(w http.ResponseWriter, r *http.Request) {
	var req SubmitLeaveRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	draft, err := draftFromDTO(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	violations := leave.Validate(draft, leave.Today())
	writeJSON(w, http.StatusOK, ValidateResponse{
		Valid:      len(violations) == 0,
		Duration:   leave.ResolveDuration(draft).InexactFloat64(),
		Violations: toViolationDTOs(violations),
	})
}

// SubmitRequest submits a draft as the authenticated user.
func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing session", nil)
		return
	}

	var req SubmitLeaveRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	draft, err := draftFromDTO(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	created, err := h.Store.Submit(r.Context(), draft, user)
	if err != nil {
		var vf *leave.ValidationFailedError
		if errors.As(err, &vf) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:      "Validation failed",
				Code:       "validation_failed",
				Violations: toViolationDTOs(vf.Violations),
			})
			return
		}
		if !errors.Is(err, leave.ErrSaveFailed) {
			writeError(w, http.StatusInternalServerError, "Failed to submit request", err)
			return
		}
		// Save failure: mutation stands, durability is degraded.
		writeJSON(w, http.StatusCreated, MutationResponse{Request: toRequestDTO(*created), Persisted: false})
		return
	}

	writeJSON(w, http.StatusCreated, MutationResponse{Request: toRequestDTO(*created), Persisted: true})
}

// ApproveRequest transitions a pending request to Approved.
// POST /api/requests/{id}/approve
func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Store.Approve)
}

// RejectRequest transitions a pending request to Rejected.
// POST /api/requests/{id}/reject
func (h *Handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Store.Reject)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id leave.RequestID) (*leave.Request, error)) {
	id := leave.RequestID(chi.URLParam(r, "id"))

	updated, err := op(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, leave.ErrNotFound):
			writeError(w, http.StatusNotFound, "Request not found", nil)
			return
		case errors.Is(err, leave.ErrInvalidTransition):
			writeError(w, http.StatusConflict, "Request has already been decided", nil)
			return
		case errors.Is(err, leave.ErrSaveFailed):
			writeJSON(w, http.StatusOK, MutationResponse{Request: toRequestDTO(*updated), Persisted: false})
			return
		default:
			writeError(w, http.StatusInternalServerError, "Failed to update request", err)
			return
		}
	}

	writeJSON(w, http.StatusOK, MutationResponse{Request: toRequestDTO(*updated), Persisted: true})
}

// ListMyRequests returns the caller's requests, newest-first.
func (h *Handler) ListMyRequests(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing session", nil)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTOs(h.Store.ListByRequester(user.ID)))
}

// ListAllRequests returns every request, newest-first.
func (h *Handler) ListAllRequests(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toRequestDTOs(h.Store.ListAll()))
}

// ListPendingRequests returns the pending approval queue, newest-first.
func (h *Handler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toRequestDTOs(h.Store.ListPending()))
}

// =============================================================================
// ANALYTICS HANDLERS
// =============================================================================

// GetAbsenceRatio returns the per-type percentage breakdown for one
// requester and year. Defaults to the caller and the current year.
func (h *Handler) GetAbsenceRatio(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing session", nil)
		return
	}

	requesterID := r.URL.Query().Get("requester_id")
	if requesterID == "" {
		requesterID = user.ID
	}
	year, err := yearParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	ratios := leave.AbsenceRatio(h.Store.Snapshot(), requesterID, year)
	out := make(map[string]float64, len(ratios))
	for t, ratio := range ratios {
		out[string(t)] = ratio.InexactFloat64()
	}

	writeJSON(w, http.StatusOK, AbsenceRatioDTO{RequesterID: requesterID, Year: year, Ratios: out})
}

// GetDepartmentRollup returns approved days and request counts per
// department for one year.
func (h *Handler) GetDepartmentRollup(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	rollup := leave.DepartmentRollup(h.Store.Snapshot(), year)
	dtos := make([]DepartmentStatsDTO, 0, len(rollup))
	for dept, stats := range rollup {
		dtos = append(dtos, DepartmentStatsDTO{
			Department:   dept,
			TotalDays:    stats.TotalDays.InexactFloat64(),
			RequestCount: stats.RequestCount,
		})
	}

	writeJSON(w, http.StatusOK, DepartmentRollupDTO{Year: year, Departments: dtos})
}

// GetYearSummary returns overall counts for one year.
func (h *Handler) GetYearSummary(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	stats := leave.YearSummary(h.Store.Snapshot(), year)
	writeJSON(w, http.StatusOK, YearSummaryDTO{
		Year:             stats.Year,
		TotalRequests:    stats.TotalRequests,
		ApprovedRequests: stats.ApprovedRequests,
		TotalLeaveDays:   stats.TotalLeaveDays.InexactFloat64(),
	})
}

// ExportAnalytics streams the year's analytics as an XLSX workbook.
func (h *Handler) ExportAnalytics(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	snapshot := h.Store.Snapshot()
	summary := leave.YearSummary(snapshot, year)
	rollup := leave.DepartmentRollup(snapshot, year)

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="leave-report-%d.xlsx"`, year))
	if err := report.WriteWorkbook(w, year, summary, rollup); err != nil {
		h.Logger.Error().Err(err).Msg("analytics export failed")
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}

// draftFromDTO maps the wire draft onto the domain draft. Empty date
// strings become zero Dates so the validation engine can surface
// missing_field violations; malformed dates are a transport-level error.
func draftFromDTO(req SubmitLeaveRequest) (leave.Draft, error) {
	draft := leave.Draft{
		Type:       leave.Type(req.LeaveType),
		Reason:     req.Reason,
		Attachment: req.Attachment,
		Duration:   decimal.NewFromFloat(req.Duration),
	}
	if req.StartDate != "" {
		start, err := leave.ParseDate(req.StartDate)
		if err != nil {
			return leave.Draft{}, err
		}
		draft.StartDate = start
	}
	if req.EndDate != "" {
		end, err := leave.ParseDate(req.EndDate)
		if err != nil {
			return leave.Draft{}, err
		}
		draft.EndDate = end
	}
	return draft, nil
}

func yearParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return leave.Today().Year(), nil
	}
	return strconv.Atoi(raw)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
