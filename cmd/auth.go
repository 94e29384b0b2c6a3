package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/latke/internal/api"
	"github.com/desertthunder/latke/internal/repositories"
	"github.com/desertthunder/latke/internal/shared"
	"github.com/desertthunder/latke/internal/ui"
	"github.com/urfave/cli/v3"
)

// Login authenticates with email and password.
//
// The password comes from --password-stdin, the LATKE_PASSWORD environment
// variable, or the saved credential, in that order. It is handed to the API
// client once and never logged.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	if email == "" {
		email = r.config.Credentials.Email
	}
	if email == "" {
		return fmt.Errorf("%w: pass --email or set credentials.email in config.toml", shared.ErrMissingCredentials)
	}

	password, err := r.resolvePassword(cmd, email)
	if err != nil {
		return err
	}

	r.logger.Info("logging in", "email", email)

	info, err := r.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if cmd.Bool("save") {
		db, err := r.database()
		if err != nil {
			return err
		}
		if err := repositories.NewCredentialRepository(db).Save(r.config.Credentials.Service, email, password); err != nil {
			return err
		}
		r.logger.Info("password saved", "service", r.config.Credentials.Service)
	}

	if err := r.saveSession(email, info); err != nil {
		r.logger.Warn("failed to cache session", "error", err)
	}

	r.writePlain("✓ Logged in as user %s\n", info.UserID)
	if !info.Expires.IsZero() {
		r.writePlain("Token expires: %s\n", info.Expires.Format(time.RFC1123))
	}
	return nil
}

// resolvePassword finds the login password without ever echoing it.
func (r *Runner) resolvePassword(cmd *cli.Command, email string) (string, error) {
	if cmd.Bool("password-stdin") {
		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			return "", fmt.Errorf("%w: no password on stdin", shared.ErrMissingCredentials)
		}
		return strings.TrimSpace(scanner.Text()), nil
	}

	if password := os.Getenv("LATKE_PASSWORD"); password != "" {
		return password, nil
	}

	db, err := r.database()
	if err != nil {
		return "", err
	}
	password, err := repositories.NewCredentialRepository(db).Get(r.config.Credentials.Service, email)
	if err != nil {
		return "", fmt.Errorf("%w: use --password-stdin, LATKE_PASSWORD, or login --save first", shared.ErrMissingCredentials)
	}
	return password, nil
}

// Pair authenticates by showing a pairing code the user confirms on another device.
func (r *Runner) Pair(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	if email == "" {
		email = r.config.Credentials.Email
	}

	var info *api.SessionInfo
	var err error

	if cmd.Bool("plain") {
		info, err = r.pairPlain(ctx)
	} else {
		info, err = r.pairUI(ctx)
	}
	if err != nil {
		return err
	}

	if email != "" {
		if err := r.saveSession(email, info); err != nil {
			r.logger.Warn("failed to cache session", "error", err)
		}
	}

	r.writePlain("✓ Paired as user %s\n", info.UserID)
	return nil
}

// pairUI runs the interactive pairing flow.
func (r *Runner) pairUI(ctx context.Context) (*api.SessionInfo, error) {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/latke-tui.log")
	if err != nil {
		return nil, fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewPairModel(ctx, r.client)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return nil, fmt.Errorf("error running TUI: %w", err)
	}

	return model.Session()
}

// pairPlain polls for confirmation without the TUI, for scripts and dumb terminals.
func (r *Runner) pairPlain(ctx context.Context) (*api.SessionInfo, error) {
	code, err := r.client.RequestDeviceCode(ctx)
	if err != nil {
		return nil, err
	}

	r.writePlain("Enter this code on your other device: %s\n", code.Code)
	r.writePlain("Waiting for confirmation (expires in %ds)...\n", code.ExpiresIn)

	deadline := time.Now().Add(time.Duration(code.ExpiresIn) * time.Second)
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			if time.Now().After(deadline) {
				return nil, fmt.Errorf("pairing code expired")
			}
			info, err := r.client.PollDeviceCode(ctx, code.Code)
			if err != nil {
				return nil, err
			}
			if info != nil {
				return info, nil
			}
		}
	}
}

// Status shows the current session state.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	r.restoreSession()

	info, ok := r.client.Info()
	if !ok {
		return r.writePlain("✗ Not logged in\n")
	}

	r.writePlain("✓ Logged in as user %s\n", info.UserID)
	if info.Expires.IsZero() {
		return r.writePlain("Token expires: unknown\n")
	}
	return r.writePlain("Token expires: %s\n", info.Expires.Format(time.RFC1123))
}

// Logout drops the in-memory session and the cached account row.
func (r *Runner) Logout(ctx context.Context, cmd *cli.Command) error {
	r.client.Logout()

	email := r.config.Credentials.Email
	if email != "" {
		if db, err := r.database(); err == nil {
			accounts := repositories.NewAccountRepository(db)
			if err := accounts.Delete(email); err != nil {
				r.logger.Debug("no cached session to delete", "email", email)
			}

			if cmd.Bool("forget") {
				creds := repositories.NewCredentialRepository(db)
				if err := creds.Delete(r.config.Credentials.Service, email); err != nil {
					r.logger.Debug("no saved password to delete", "email", email)
				} else {
					r.writePlain("Saved password deleted\n")
				}
			}
		}
	}

	return r.writePlain("✓ Logged out\n")
}
