package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vexa-app/vexa-web/internal/domain"
	"github.com/vexa-app/vexa-web/internal/mailer"
	"github.com/vexa-app/vexa-web/internal/repository"
)

// minFullNameLength is the minimum length of a submitted name, in runes.
const minFullNameLength = 3

// confirmationTimeout bounds the background confirmation email send.
const confirmationTimeout = 15 * time.Second

// PrejoinService coordinates prejoin signups: validation, persistence,
// and the best-effort confirmation email.
type PrejoinService struct {
	repo   *repository.SubmissionRepository
	mailer *mailer.Mailer
}

// NewPrejoinService creates a new PrejoinService. The mailer may be nil,
// in which case no confirmation emails are sent.
func NewPrejoinService(repo *repository.SubmissionRepository, m *mailer.Mailer) *PrejoinService {
	return &PrejoinService{
		repo:   repo,
		mailer: m,
	}
}

// CreateParams holds the input for a prejoin signup.
type CreateParams struct {
	FullName  string
	Email     string
	Consent   bool
	UserAgent string
	IP        *string
}

// Create validates and stores a prejoin signup, then kicks off the
// confirmation email in the background. Email delivery failures are
// logged, never returned: the signup already succeeded.
func (s *PrejoinService) Create(ctx context.Context, params CreateParams) (*domain.Submission, error) {
	if !params.Consent {
		return nil, domain.ErrConsentRequired
	}

	fullName := strings.TrimSpace(params.FullName)
	if utf8.RuneCountInString(fullName) < minFullNameLength {
		return nil, fmt.Errorf("%w: got %q", domain.ErrInvalidName, fullName)
	}

	email, err := normalizeEmail(params.Email)
	if err != nil {
		return nil, err
	}

	sub, err := s.repo.Create(ctx, &domain.Submission{
		FullName:  fullName,
		Email:     email,
		Consent:   params.Consent,
		UserAgent: params.UserAgent,
		IP:        params.IP,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("prejoin submission created", "submission_id", sub.ID)

	if s.mailer != nil {
		go s.sendConfirmation(sub.Email, sub.FullName)
	}

	return sub, nil
}

// sendConfirmation delivers the confirmation email on its own timeout,
// detached from the request context.
func (s *PrejoinService) sendConfirmation(email, fullName string) {
	ctx, cancel := context.WithTimeout(context.Background(), confirmationTimeout)
	defer cancel()

	if err := s.mailer.SendConfirmation(ctx, email, fullName); err != nil {
		slog.Warn("confirmation email failed", "error", err)
	}
}

// normalizeEmail validates an email address and returns it trimmed and
// lowercased, the canonical form stored in the database.
func normalizeEmail(email string) (string, error) {
	trimmed := strings.TrimSpace(email)

	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidEmail, email)
	}

	return strings.ToLower(trimmed), nil
}
