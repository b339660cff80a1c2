package business

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	slogctx "github.com/veqryn/slog-context"

	"github.com/jobwire/jobwire-go/internal/config"
	"github.com/jobwire/jobwire-go/internal/session"
	"github.com/jobwire/jobwire-go/pkg/jobwire"
)

// LoginOptions carries the login command's flags.
type LoginOptions struct {
	Email         string
	Password      string
	UserType      string
	GoogleIDToken string
}

func LoginMain(ctx context.Context, cfg *config.Config, opts LoginOptions) error {
	manager, closeFn, err := initSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	userType, err := parseUserType(opts.UserType)
	if err != nil {
		return err
	}

	if opts.GoogleIDToken != "" {
		if err := manager.GoogleLogin(ctx, opts.GoogleIDToken, userType); err != nil {
			return fmt.Errorf("google sign-in: %w", err)
		}
	} else {
		password := opts.Password
		if password == "" {
			password, err = promptPassword()
			if err != nil {
				return err
			}
		}

		if err := manager.Login(ctx, opts.Email, password, userType); err != nil {
			return fmt.Errorf("login: %w", err)
		}
	}

	current, _ := manager.Current()
	fmt.Printf("Logged in as %s (%s)\n", current.User.Email, current.User.UserType)

	return nil
}

type RegisterOptions struct {
	Email    string
	Password string
	UserType string
}

func RegisterMain(ctx context.Context, cfg *config.Config, opts RegisterOptions) error {
	manager, closeFn, err := initSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	userType, err := parseUserType(opts.UserType)
	if err != nil {
		return err
	}

	password := opts.Password
	if password == "" {
		password, err = promptPassword()
		if err != nil {
			return err
		}
	}

	if err := manager.Register(ctx, opts.Email, password, userType); err != nil {
		return fmt.Errorf("register: %w", err)
	}

	current, _ := manager.Current()
	fmt.Printf("Account created for %s, verification email sent\n", current.User.Email)

	return nil
}

func LogoutMain(ctx context.Context, cfg *config.Config, _ []string) error {
	manager, closeFn, err := initSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := manager.Logout(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	fmt.Println("Logged out")

	return nil
}

func WhoamiMain(ctx context.Context, cfg *config.Config, _ []string) error {
	manager, closeFn, err := initSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	current, state := manager.Current()
	if state != session.StateAuthenticated {
		fmt.Println("Not logged in")
		return nil
	}

	user := current.User
	fmt.Printf("%s %s <%s>\n", user.FirstName, user.LastName, user.Email)
	fmt.Printf("type: %s, verified: %t, profile complete: %t\n", user.UserType, user.EmailVerified, user.IsProfileComplete)

	return nil
}

// RefresherMain keeps the persisted session's access token fresh until
// interrupted. Useful when other processes share the valkey token slot.
func RefresherMain(ctx context.Context, cfg *config.Config, _ []string) error {
	manager, closeFn, err := initSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := requireAuth(manager); err != nil {
		return err
	}

	slogctx.Info(ctx, "Starting token refresh loop", "interval", cfg.Session.RefreshInterval)
	manager.RunAutoRefresh(ctx, cfg.Session.RefreshInterval)

	return nil
}

func parseUserType(s string) (jobwire.UserType, error) {
	switch strings.ToUpper(s) {
	case "CANDIDATE", "":
		return jobwire.UserTypeCandidate, nil
	case "EMPLOYER":
		return jobwire.UserTypeEmployer, nil
	}

	return "", fmt.Errorf("unknown user type %q, want candidate or employer", s)
}

func promptPassword() (string, error) {
	fmt.Print("Password: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}

	return strings.TrimSpace(line), nil
}
