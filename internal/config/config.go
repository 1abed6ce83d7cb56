package config

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; must be provided via flag or environment.
	DefaultDatabaseURL = ""

	// DefaultSMTPHost and DefaultSMTPPort point at a local dev mail catcher.
	DefaultSMTPHost = "127.0.0.1"
	DefaultSMTPPort = 1025

	// DefaultSMTPFrom is the sender address for confirmation emails.
	DefaultSMTPFrom = "noreply@vexa.local"

	// DefaultSignupRPS and DefaultSignupBurst bound how fast a single IP
	// can hit the public prejoin endpoint.
	DefaultSignupRPS   = 1.0
	DefaultSignupBurst = 5
)
