package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "github.com/vexa-app/vexa-web/docs" // Import generated docs
	"github.com/vexa-app/vexa-web/internal/handler/dto"
	"github.com/vexa-app/vexa-web/internal/mailer"
	"github.com/vexa-app/vexa-web/internal/middleware"
	"github.com/vexa-app/vexa-web/internal/repository"
	"github.com/vexa-app/vexa-web/internal/service"
	"github.com/vexa-app/vexa-web/internal/static"
)

// Config holds runtime settings for the HTTP layer.
type Config struct {
	// AdminToken guards the admin endpoints; empty disables them.
	AdminToken string
	// Mailer sends confirmation emails; nil disables email entirely.
	Mailer *mailer.Mailer
	// SignupRPS and SignupBurst bound the public prejoin endpoint per IP.
	SignupRPS   float64
	SignupBurst int
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	pool           *pgxpool.Pool
	prejoinService *service.PrejoinService
	submissionRepo *repository.SubmissionRepository
	mailer         *mailer.Mailer
	adminAuth      *middleware.AdminAuth
	signupLimiter  *middleware.IPRateLimiter
}

// New creates a new Handler instance with all dependencies.
func New(pool *pgxpool.Pool, cfg Config) *Handler {
	submissionRepo := repository.NewSubmissionRepository(pool)
	prejoinService := service.NewPrejoinService(submissionRepo, cfg.Mailer)

	return &Handler{
		pool:           pool,
		prejoinService: prejoinService,
		submissionRepo: submissionRepo,
		mailer:         cfg.Mailer,
		adminAuth:      middleware.NewAdminAuth(cfg.AdminToken),
		signupLimiter:  middleware.NewIPRateLimiter(cfg.SignupRPS, cfg.SignupBurst),
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Landing page and assets
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.Handle("GET /assets/", static.AssetsHandler())

	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// Swagger UI
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler())

	// Public signup, rate limited per IP
	mux.Handle("POST /api/prejoin", h.signupLimiter.Limit(http.HandlerFunc(h.handleCreatePrejoin)))

	// Admin endpoints
	mux.Handle("GET /api/prejoin", h.adminAuth.Authenticate(http.HandlerFunc(h.handleListPrejoin)))
	mux.Handle("GET /api/prejoin/export.csv", h.adminAuth.Authenticate(http.HandlerFunc(h.handleExportCSV)))
	mux.Handle("GET /api/prejoin/{id}", h.adminAuth.Authenticate(http.HandlerFunc(h.handleGetPrejoin)))
	mux.Handle("DELETE /api/prejoin/{id}", h.adminAuth.Authenticate(http.HandlerFunc(h.handleDeletePrejoin)))
	mux.Handle("POST /api/test-email", h.adminAuth.Authenticate(http.HandlerFunc(h.handleTestEmail)))
}

// Middleware wraps the full route table with the response header policy.
func (h *Handler) Middleware(next http.Handler) http.Handler {
	return middleware.SecurityHeaders(next)
}

// handleIndex serves the embedded landing page.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(static.IndexHTML())
}

// handleHealthz returns 200 OK if the database is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.pool.Ping(ctx); err != nil {
		slog.Error("database health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Ping checks if the database is reachable (used for testing).
func (h *Handler) Ping(ctx context.Context) error {
	return h.pool.Ping(ctx)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// extractSubmissionID extracts and validates the submission ID path parameter.
// Returns (id, true) if valid, ("", false) if invalid (error already sent to client).
func extractSubmissionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "submission id is required")
		return "", false
	}

	if _, err := uuid.Parse(id); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "submission id must be a valid UUID")
		return "", false
	}

	return id, true
}
