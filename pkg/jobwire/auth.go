package jobwire

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jobwire/jobwire-go/internal/validate"
)

// AuthService wraps the /auth endpoints. Methods never translate errors:
// a failed call rejects with the Client's *APIError as-is.
type AuthService struct {
	client *Client
}

type AuthRequest struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	UserType UserType `json:"user_type"`
}

type GoogleAuthRequest struct {
	Token    string   `json:"token"`
	UserType UserType `json:"user_type"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ForgotPasswordRequest struct {
	Email    string   `json:"email"`
	UserType UserType `json:"user_type"`
}

type ResetPasswordRequest struct {
	Email       string   `json:"email"`
	UserType    UserType `json:"user_type"`
	OTP         string   `json:"otp"`
	NewPassword string   `json:"new_password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type VerifyEmailRequest struct {
	OTP string `json:"otp"`
}

type ResendVerificationRequest struct {
	Email    string   `json:"email"`
	UserType UserType `json:"user_type"`
}

// Register creates a new candidate or employer account. Email and
// password shapes are checked before any network traffic; a violation
// surfaces as an *APIError with status 422 so callers handle it through
// the single error channel.
func (s *AuthService) Register(ctx context.Context, email, password string, userType UserType) (Result[AuthPayload], error) {
	if err := preflight(email, password); err != nil {
		return Result[AuthPayload]{}, err
	}

	return postDecoded[AuthPayload](ctx, s.client, "/auth/register", AuthRequest{
		Email:    email,
		Password: password,
		UserType: userType,
	})
}

// Login authenticates with email and password.
func (s *AuthService) Login(ctx context.Context, email, password string, userType UserType) (Result[AuthPayload], error) {
	return postDecoded[AuthPayload](ctx, s.client, "/auth/login", AuthRequest{
		Email:    email,
		Password: password,
		UserType: userType,
	})
}

// GoogleAuth signs in or signs up with a Google ID token.
func (s *AuthService) GoogleAuth(ctx context.Context, idToken string, userType UserType) (Result[AuthPayload], error) {
	return postDecoded[AuthPayload](ctx, s.client, "/auth/google", GoogleAuthRequest{
		Token:    idToken,
		UserType: userType,
	})
}

// Me returns the current user for the supplied credential.
func (s *AuthService) Me(ctx context.Context) (Result[UserSummary], error) {
	return getDecoded[UserSummary](ctx, s.client, "/auth/me", nil)
}

// Refresh exchanges a refresh token for a fresh token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (Result[TokenPair], error) {
	return postDecoded[TokenPair](ctx, s.client, "/auth/refresh", RefreshRequest{RefreshToken: refreshToken})
}

// Logout invalidates the current backend session.
func (s *AuthService) Logout(ctx context.Context) (Result[struct{}], error) {
	return postDecoded[struct{}](ctx, s.client, "/auth/logout", nil)
}

// LogoutAll invalidates every session of the current user.
func (s *AuthService) LogoutAll(ctx context.Context) (Result[struct{}], error) {
	return postDecoded[struct{}](ctx, s.client, "/auth/logout-all", nil)
}

// Sessions lists the active backend sessions of the current user.
func (s *AuthService) Sessions(ctx context.Context) (Result[[]SessionInfo], error) {
	return getDecoded[[]SessionInfo](ctx, s.client, "/auth/sessions", nil)
}

// RevokeSession revokes one backend session by ID.
func (s *AuthService) RevokeSession(ctx context.Context, sessionID string) (Result[struct{}], error) {
	return postDecoded[struct{}](ctx, s.client, fmt.Sprintf("/auth/sessions/%s/revoke", sessionID), nil)
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string, userType UserType) (Result[struct{}], error) {
	return postDecoded[struct{}](ctx, s.client, "/auth/forgot-password", ForgotPasswordRequest{
		Email:    email,
		UserType: userType,
	})
}

func (s *AuthService) ResetPassword(ctx context.Context, req ResetPasswordRequest) (Result[struct{}], error) {
	if err := validate.Password(req.NewPassword); err != nil {
		return Result[struct{}]{}, &APIError{Status: http.StatusUnprocessableEntity, Message: err.Error()}
	}

	return postDecoded[struct{}](ctx, s.client, "/auth/reset-password", req)
}

func (s *AuthService) ChangePassword(ctx context.Context, currentPassword, newPassword string) (Result[struct{}], error) {
	if err := validate.Password(newPassword); err != nil {
		return Result[struct{}]{}, &APIError{Status: http.StatusUnprocessableEntity, Message: err.Error()}
	}

	return postDecoded[struct{}](ctx, s.client, "/auth/change-password", ChangePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	})
}

func (s *AuthService) VerifyEmail(ctx context.Context, otp string) (Result[struct{}], error) {
	return postDecoded[struct{}](ctx, s.client, "/auth/verify-email", VerifyEmailRequest{OTP: otp})
}

func (s *AuthService) ResendVerification(ctx context.Context, email string, userType UserType) (Result[struct{}], error) {
	return postDecoded[struct{}](ctx, s.client, "/auth/resend-verification", ResendVerificationRequest{
		Email:    email,
		UserType: userType,
	})
}

func preflight(email, password string) error {
	if err := validate.Email(email); err != nil {
		return &APIError{Status: http.StatusUnprocessableEntity, Message: err.Error()}
	}
	if err := validate.Password(password); err != nil {
		return &APIError{Status: http.StatusUnprocessableEntity, Message: err.Error()}
	}

	return nil
}
