package dto

import (
	"time"

	"github.com/vexa-app/vexa-web/internal/domain"
)

// OKResponse is the minimal success acknowledgement for POST /api/prejoin.
type OKResponse struct {
	OK bool `json:"ok"`
}

// SubmissionResponse represents one prejoin submission.
type SubmissionResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Consent   bool      `json:"consent"`
	UserAgent string    `json:"user_agent"`
	IP        *string   `json:"ip"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmissionsListResponse represents the response for GET /api/prejoin.
type SubmissionsListResponse struct {
	Items    []SubmissionResponse `json:"items"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"pageSize"`
	Total    int                  `json:"total"`
}

// ToSubmissionResponse converts domain.Submission to SubmissionResponse.
func ToSubmissionResponse(sub *domain.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:        sub.ID,
		FullName:  sub.FullName,
		Email:     sub.Email,
		Consent:   sub.Consent,
		UserAgent: sub.UserAgent,
		IP:        sub.IP,
		CreatedAt: sub.CreatedAt,
	}
}

// ToSubmissionsListResponse converts a page of submissions.
func ToSubmissionsListResponse(subs []*domain.Submission, page, pageSize, total int) SubmissionsListResponse {
	items := make([]SubmissionResponse, 0, len(subs))
	for _, sub := range subs {
		items = append(items, ToSubmissionResponse(sub))
	}
	return SubmissionsListResponse{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}
}
