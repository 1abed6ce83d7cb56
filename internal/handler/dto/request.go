package dto

// CreatePrejoinRequest represents the request body for POST /api/prejoin.
// Field names match the landing page form payload.
type CreatePrejoinRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Consent  bool   `json:"consent"`
}

// TestEmailRequest represents the request body for POST /api/test-email.
type TestEmailRequest struct {
	To   string `json:"to"`
	Name string `json:"name,omitempty"`
}

// ListFilters represents query parameters for GET /api/prejoin.
type ListFilters struct {
	Page  int    // ?page=1, 1-based
	Limit int    // ?limit=20, capped at 100
	Query string // ?q=<substring of name or email>
}
