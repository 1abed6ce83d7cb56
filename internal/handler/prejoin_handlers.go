package handler

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/vexa-app/vexa-web/internal/domain"
	"github.com/vexa-app/vexa-web/internal/handler/dto"
	"github.com/vexa-app/vexa-web/internal/middleware"
	"github.com/vexa-app/vexa-web/internal/service"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// handleCreatePrejoin stores a prejoin signup from the landing page.
// @Summary Create a prejoin submission
// @Description Stores a signup from the landing page and sends a best-effort confirmation email.
// @Tags prejoin
// @Accept json
// @Produce json
// @Param request body dto.CreatePrejoinRequest true "Signup payload"
// @Success 201 {object} dto.OKResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /prejoin [post]
func (h *Handler) handleCreatePrejoin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.CreatePrejoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	var ip *string
	if addr := middleware.ClientIP(r); addr != "" {
		ip = &addr
	}

	_, err := h.prejoinService.Create(ctx, service.CreateParams{
		FullName:  req.FullName,
		Email:     req.Email,
		Consent:   req.Consent,
		UserAgent: r.Header.Get("User-Agent"),
		IP:        ip,
	})
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusCreated, dto.OKResponse{OK: true})
}

// handleListPrejoin returns a page of submissions for the admin view.
// @Summary List prejoin submissions
// @Description Paginated, newest-first submission listing with optional name/email search.
// @Tags prejoin
// @Produce json
// @Param page query int false "Page number, 1-based (default 1)"
// @Param limit query int false "Page size, 1-100 (default 20)"
// @Param q query string false "Substring match on name or email"
// @Success 200 {object} dto.SubmissionsListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /prejoin [get]
func (h *Handler) handleListPrejoin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filters := parseListFilters(r)
	offset := (filters.Page - 1) * filters.Limit

	subs, total, err := h.submissionRepo.List(ctx, filters.Query, filters.Limit, offset)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToSubmissionsListResponse(subs, filters.Page, filters.Limit, total))
}

// handleGetPrejoin returns a single submission.
// @Summary Get a prejoin submission
// @Tags prejoin
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} dto.SubmissionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /prejoin/{id} [get]
func (h *Handler) handleGetPrejoin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := extractSubmissionID(w, r)
	if !ok {
		return
	}

	sub, err := h.submissionRepo.GetByID(ctx, id)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToSubmissionResponse(sub))
}

// handleDeletePrejoin removes a submission.
// @Summary Delete a prejoin submission
// @Tags prejoin
// @Param id path string true "Submission ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /prejoin/{id} [delete]
func (h *Handler) handleDeletePrejoin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := extractSubmissionID(w, r)
	if !ok {
		return
	}

	if err := h.submissionRepo.Delete(ctx, id); err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleExportCSV streams all matching submissions as a CSV download.
// @Summary Export submissions as CSV
// @Tags prejoin
// @Produce text/csv
// @Param q query string false "Substring match on name or email"
// @Success 200 {string} string "CSV payload"
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /prejoin/export.csv [get]
func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subs, err := h.submissionRepo.All(ctx, strings.TrimSpace(r.URL.Query().Get("q")))
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="prejoin_export.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	_ = cw.Write(domain.ExportHeader)
	for _, sub := range subs {
		// Headers are already sent, nothing useful to report on a write error.
		_ = cw.Write(sub.ExportRecord())
	}
	cw.Flush()
}

// handleTestEmail sends one confirmation email synchronously.
// @Summary Send a test confirmation email
// @Tags email
// @Accept json
// @Produce json
// @Param request body dto.TestEmailRequest true "Recipient"
// @Success 200 {object} dto.OKResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /test-email [post]
func (h *Handler) handleTestEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.TestEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if req.To == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "to is required")
		return
	}

	name := req.Name
	if name == "" {
		name = "Değerli Kullanıcı"
	}

	if h.mailer == nil {
		status, code, message := dto.MapDomainError(fmt.Errorf("%w: delivery is not configured", domain.ErrEmailSendFailed))
		respondError(w, status, code, message)
		return
	}

	if err := h.mailer.SendConfirmation(ctx, req.To, name); err != nil {
		status, code, message := dto.MapDomainError(fmt.Errorf("%w: %v", domain.ErrEmailSendFailed, err))
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.OKResponse{OK: true})
}

// parseListFilters reads pagination and search parameters, clamping them
// to valid ranges.
func parseListFilters(r *http.Request) dto.ListFilters {
	query := r.URL.Query()

	page := 1
	if v, err := strconv.Atoi(query.Get("page")); err == nil && v >= 1 {
		page = v
	}

	limit := defaultPageSize
	if v, err := strconv.Atoi(query.Get("limit")); err == nil && v >= 1 {
		limit = v
		if limit > maxPageSize {
			limit = maxPageSize
		}
	}

	return dto.ListFilters{
		Page:  page,
		Limit: limit,
		Query: strings.TrimSpace(query.Get("q")),
	}
}
