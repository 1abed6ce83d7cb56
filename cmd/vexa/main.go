// @title			Vexa Prejoin API
// @version		1.0
// @description	Landing page and prejoin signup backend for Vexa.
// @BasePath		/api

package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"github.com/vexa-app/vexa-web/internal/config"
	"github.com/vexa-app/vexa-web/internal/database"
	"github.com/vexa-app/vexa-web/internal/domain"
	"github.com/vexa-app/vexa-web/internal/handler"
	"github.com/vexa-app/vexa-web/internal/logger"
	"github.com/vexa-app/vexa-web/internal/mailer"
	"github.com/vexa-app/vexa-web/internal/repository"
)

func main() {
	// Local development reads SMTP and database settings from .env.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "vexa",
		Usage: "Vexa landing page and prejoin signup service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:     "database-url",
				Aliases:  []string{"d"},
				Value:    config.DefaultDatabaseURL,
				Usage:    "PostgreSQL database URL",
				EnvVars:  []string{"DATABASE_URL"},
				Required: true,
			},
			&cli.StringFlag{
				Name:    "smtp-host",
				Value:   config.DefaultSMTPHost,
				Usage:   "SMTP server host for confirmation emails",
				EnvVars: []string{"SMTP_HOST"},
			},
			&cli.IntFlag{
				Name:    "smtp-port",
				Value:   config.DefaultSMTPPort,
				Usage:   "SMTP server port",
				EnvVars: []string{"SMTP_PORT"},
			},
			&cli.StringFlag{
				Name:    "smtp-user",
				Usage:   "SMTP username (auth skipped when empty)",
				EnvVars: []string{"SMTP_USER"},
			},
			&cli.StringFlag{
				Name:    "smtp-pass",
				Usage:   "SMTP password",
				EnvVars: []string{"SMTP_PASS"},
			},
			&cli.BoolFlag{
				Name:    "smtp-tls",
				Value:   true,
				Usage:   "Use STARTTLS when the server offers it",
				EnvVars: []string{"SMTP_TLS"},
			},
			&cli.StringFlag{
				Name:    "smtp-from",
				Value:   config.DefaultSMTPFrom,
				Usage:   "Sender address for confirmation emails",
				EnvVars: []string{"SMTP_FROM"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the web server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Value:   config.DefaultPort,
						Usage:   "HTTP server port",
						EnvVars: []string{"PORT"},
					},
					&cli.StringFlag{
						Name:    "admin-token",
						Usage:   "Bearer token for admin endpoints (disabled when empty)",
						EnvVars: []string{"ADMIN_TOKEN"},
					},
				},
				Action: runServe,
			},
			{
				Name:  "export",
				Usage: "Write all prejoin submissions to stdout as CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Filter by name or email substring",
					},
				},
				Action: runExport,
			},
			{
				Name:  "send-test-email",
				Usage: "Send a single confirmation email and report the result",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "to",
						Usage:    "Recipient address",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "Recipient name used in the greeting",
					},
				},
				Action: runSendTestEmail,
			},
		},
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func mailerFromFlags(c *cli.Context) *mailer.Mailer {
	return mailer.New(mailer.Config{
		Host:     c.String("smtp-host"),
		Port:     c.Int("smtp-port"),
		Username: c.String("smtp-user"),
		Password: c.String("smtp-pass"),
		From:     c.String("smtp-from"),
		StartTLS: c.Bool("smtp-tls"),
	})
}

func runServe(c *cli.Context) error {
	ctx := c.Context

	port := c.String("port")
	if port == "" {
		port = config.DefaultPort
	}
	databaseURL := c.String("database-url")

	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	adminToken := c.String("admin-token")
	if adminToken == "" {
		slog.Warn("no admin token configured, admin endpoints are disabled")
	}

	h := handler.New(db.Pool(), handler.Config{
		AdminToken:  adminToken,
		Mailer:      mailerFromFlags(c),
		SignupRPS:   config.DefaultSignupRPS,
		SignupBurst: config.DefaultSignupBurst,
	})

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           h.Middleware(mux),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "server_addr", "http://localhost:"+port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-done:
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func runExport(c *cli.Context) error {
	ctx := c.Context

	db, err := database.New(ctx, c.String("database-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	repo := repository.NewSubmissionRepository(db.Pool())
	submissions, err := repo.All(ctx, c.String("query"))
	if err != nil {
		return fmt.Errorf("failed to load submissions: %w", err)
	}

	w := csv.NewWriter(os.Stdout)
	if err := w.Write(domain.ExportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, sub := range submissions {
		if err := w.Write(sub.ExportRecord()); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	slog.Info("export completed", "count", len(submissions))
	return nil
}

func runSendTestEmail(c *cli.Context) error {
	ctx := c.Context

	name := c.String("name")
	if name == "" {
		name = "Değerli Kullanıcı"
	}

	m := mailerFromFlags(c)
	if err := m.SendConfirmation(ctx, c.String("to"), name); err != nil {
		return fmt.Errorf("failed to send test email: %w", err)
	}

	slog.Info("test email sent", "to", c.String("to"))
	return nil
}
