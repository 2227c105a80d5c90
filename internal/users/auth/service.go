// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/taibuivan/weebtsuki/internal/platform/apperr"
	"github.com/taibuivan/weebtsuki/internal/platform/constants"
	"github.com/taibuivan/weebtsuki/internal/platform/mail"
	"github.com/taibuivan/weebtsuki/internal/platform/sec"
	"github.com/taibuivan/weebtsuki/internal/platform/validate"
	"github.com/taibuivan/weebtsuki/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// Dependencies groups the collaborators of [Service].
type Dependencies struct {
	Users       UserRepository
	OTPs        CodeRepository
	ResetTokens CodeRepository
	Tokens      TokenProvider
	Mailer      mail.Sender
	Logger      *slog.Logger

	// FrontendURL is the base of links placed in outgoing mail.
	FrontendURL string
}

// Service implements the account use cases.
type Service struct {
	users       UserRepository
	otps        CodeRepository
	resetTokens CodeRepository
	tokens      TokenProvider
	mailer      mail.Sender
	logger      *slog.Logger
	frontendURL string
}

// NewService constructs a new auth [Service].
func NewService(deps Dependencies) *Service {
	return &Service{
		users:       deps.Users,
		otps:        deps.OTPs,
		resetTokens: deps.ResetTokens,
		tokens:      deps.Tokens,
		mailer:      deps.Mailer,
		logger:      deps.Logger,
		frontendURL: strings.TrimRight(deps.FrontendURL, "/"),
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new reader.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

/*
Register creates an unverified account and mails a verification code.

Description: Every account starts with the user role. The code is kept in
Redis for [OTPTTL]; a mail failure does not fail the registration.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: apperr.ValidationError, apperr.Conflict or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = normalizeEmail(input.Email)

	// ── 1. Validation ─────────────────────────────────────────────────
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, MinUsernameLength).
		MaxLen(FieldUsername, input.Username, MaxUsernameLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email)
	checkPassword(validator, FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 2. Uniqueness ─────────────────────────────────────────────────
	if _, err := service.users.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Conflict("Email already registered")
	} else if !apperr.IsCode(err, apperr.CodeNotFound) {
		return nil, err
	}

	// ── 3. Persistence ────────────────────────────────────────────────
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleUser,
	}

	if err := service.users.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_registered", slog.String("user_id", user.ID))

	// ── 4. Verification Code ──────────────────────────────────────────
	if err := service.issueOTP(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

/*
VerifyOTP confirms a user's e-mail address with the mailed code.

Returns:
  - error: apperr.ValidationError for a wrong or expired code,
    apperr.NotFound for an unknown user
*/
func (service *Service) VerifyOTP(context context.Context, userID, otp string) error {
	otp = strings.TrimSpace(otp)

	validator := &validate.Validator{}
	validator.Required(FieldUserID, userID).Required(FieldOTP, otp)
	if err := validator.Err(); err != nil {
		return err
	}

	user, err := service.findUser(context, userID)
	if err != nil {
		return err
	}

	stored, err := service.otps.Get(context, user.ID)
	if apperr.IsCode(err, apperr.CodeNotFound) || (err == nil && subtle.ConstantTimeCompare([]byte(stored), []byte(otp)) != 1) {
		return validate.RequiredError(FieldOTP, "Invalid or expired OTP")
	}
	if err != nil {
		return err
	}

	if err := service.users.MarkVerified(context, user.ID); err != nil {
		return err
	}

	if err := service.otps.Delete(context, user.ID); err != nil {
		service.logger.WarnContext(context, "otp_cleanup_failed", slog.String("user_id", user.ID), slog.Any("error", err))
	}

	service.logger.InfoContext(context, "user_verified", slog.String("user_id", user.ID))
	return nil
}

/*
ResendOTP issues a fresh verification code, replacing the previous one.

Returns:
  - error: apperr.ValidationError when already verified, apperr.NotFound
    for an unknown user
*/
func (service *Service) ResendOTP(context context.Context, userID string) error {
	if err := (&validate.Validator{}).Required(FieldUserID, userID).Err(); err != nil {
		return err
	}

	user, err := service.findUser(context, userID)
	if err != nil {
		return err
	}

	if user.IsVerified {
		return validate.RequiredError(FieldUserID, "Email already verified")
	}

	return service.issueOTP(context, user)
}

// issueOTP stores a new code for user and mails it.
func (service *Service) issueOTP(context context.Context, user *User) error {
	otp, err := sec.GenerateOTP(OTPDigits)
	if err != nil {
		return fmt.Errorf("auth_service_generate_otp_failed: %w", err)
	}

	if err := service.otps.Set(context, user.ID, otp, OTPTTL); err != nil {
		return err
	}

	service.deliver(context, mail.OTPMessage(user.Email, user.Username, otp, int(OTPTTL/time.Minute)))
	return nil
}

// # Authentication Flow

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresIn int    `json:"expiresIn"`
	User      *User  `json:"user"`
}

/*
Login validates credentials and issues an access token.

Description: Unknown e-mails and wrong passwords share one message. A
correct password on an unverified account yields [CodeVerificationRequired]
carrying the user ID so the client can resend the code.

Returns:
  - *LoginResult: Token and profile
  - error: apperr.Unauthorized or the verification error
*/
func (service *Service) Login(context context.Context, email, password string) (*LoginResult, error) {
	user, err := service.users.FindByEmail(context, normalizeEmail(email))
	if apperr.IsCode(err, apperr.CodeNotFound) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}
	if err != nil {
		return nil, err
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	if !user.IsVerified {
		return nil, &apperr.AppError{
			Code:       CodeVerificationRequired,
			Message:    "Please verify your email before logging in",
			HTTPStatus: http.StatusForbidden,
			Details:    []apperr.FieldError{{Field: FieldUserID, Message: user.ID}},
		}
	}

	token, err := service.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	service.logger.InfoContext(context, "user_logged_in", slog.String("user_id", user.ID))

	return &LoginResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(AccessTokenTTL / time.Second),
		User:      user,
	}, nil
}

// Me returns the caller's profile.
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	return service.findUser(context, userID)
}

// # Password Recovery

/*
ForgotPassword replaces the password of email's account with a generated
one and mails it.

Returns:
  - error: apperr.NotFound for an unknown e-mail
*/
func (service *Service) ForgotPassword(context context.Context, email string) error {
	email = normalizeEmail(email)
	if err := (&validate.Validator{}).Required(FieldEmail, email).Email(FieldEmail, email).Err(); err != nil {
		return err
	}

	user, err := service.users.FindByEmail(context, email)
	if err != nil {
		return err
	}

	return service.regeneratePassword(context, user)
}

/*
RequestPasswordReset mails a single-use reset link.

Description: Only a hash of the token is stored. Unknown addresses are
accepted silently so the endpoint cannot be used to discover accounts.
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) error {
	email = normalizeEmail(email)
	if err := (&validate.Validator{}).Required(FieldEmail, email).Email(FieldEmail, email).Err(); err != nil {
		return err
	}

	user, err := service.users.FindByEmail(context, email)
	if apperr.IsCode(err, apperr.CodeNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return fmt.Errorf("auth_service_generate_reset_token_failed: %w", err)
	}

	if err := service.resetTokens.Set(context, sec.HashToken(token), user.ID, ResetTokenTTL); err != nil {
		return err
	}

	link := service.frontendURL + "/reset-password?token=" + url.QueryEscape(token)
	service.deliver(context, mail.ResetLinkMessage(user.Email, user.Username, link, int(ResetTokenTTL/time.Minute)))

	return nil
}

/*
ResetPassword completes the reset-link flow.

Returns:
  - error: apperr.ValidationError for a bad password or an invalid or
    expired token
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {
	validator := (&validate.Validator{}).Required(FieldToken, token)
	checkPassword(validator, FieldNewPassword, newPassword)
	if err := validator.Err(); err != nil {
		return err
	}

	tokenHash := sec.HashToken(token)
	userID, err := service.resetTokens.Get(context, tokenHash)
	if apperr.IsCode(err, apperr.CodeNotFound) {
		return validate.RequiredError(FieldToken, "Invalid or expired reset token")
	}
	if err != nil {
		return err
	}

	if err := service.setPassword(context, userID, newPassword); err != nil {
		return err
	}

	if err := service.resetTokens.Delete(context, tokenHash); err != nil {
		service.logger.WarnContext(context, "reset_token_cleanup_failed", slog.String("user_id", userID), slog.Any("error", err))
	}

	service.logger.InfoContext(context, "password_reset", slog.String("user_id", userID))
	return nil
}

// ChangePasswordInput carries a change request from a signed-in user.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string

	// GenerateNew replaces the password with a generated one mailed to the
	// user. The other fields are ignored.
	GenerateNew bool
}

/*
ChangePassword updates the caller's password.

Returns:
  - error: apperr.ValidationError for a wrong current password or a weak
    new one, apperr.NotFound for an unknown user
*/
func (service *Service) ChangePassword(context context.Context, userID string, input ChangePasswordInput) error {
	user, err := service.findUser(context, userID)
	if err != nil {
		return err
	}

	if input.GenerateNew {
		return service.regeneratePassword(context, user)
	}

	validator := (&validate.Validator{}).Required(FieldCurrentPassword, input.CurrentPassword)
	checkPassword(validator, FieldNewPassword, input.NewPassword)
	if err := validator.Err(); err != nil {
		return err
	}

	if !sec.CheckPasswordHash(input.CurrentPassword, user.PasswordHash) {
		return validate.RequiredError(FieldCurrentPassword, "Current password is incorrect")
	}

	if err := service.setPassword(context, user.ID, input.NewPassword); err != nil {
		return err
	}

	service.logger.InfoContext(context, "password_changed", slog.String("user_id", user.ID))
	return nil
}

// regeneratePassword stores a random password for user and mails it.
func (service *Service) regeneratePassword(context context.Context, user *User) error {
	password, err := sec.GenerateSecureToken(GeneratedPasswordLength)
	if err != nil {
		return fmt.Errorf("auth_service_generate_password_failed: %w", err)
	}

	if err := service.setPassword(context, user.ID, password); err != nil {
		return err
	}

	service.logger.InfoContext(context, "password_regenerated", slog.String("user_id", user.ID))
	service.deliver(context, mail.NewPasswordMessage(user.Email, user.Username, password))
	return nil
}

func (service *Service) setPassword(context context.Context, userID, password string) error {
	hashedPassword, err := sec.HashPassword(password)
	if err != nil {
		return fmt.Errorf("auth_service_hash_failed: %w", err)
	}
	return service.users.UpdatePassword(context, userID, hashedPassword)
}

// # Helpers

// findUser looks an account up by ID. Malformed IDs are reported as missing.
func (service *Service) findUser(context context.Context, userID string) (*User, error) {
	if !uuid.IsValid(userID) {
		return nil, apperr.NotFound(resourceUser)
	}
	return service.users.FindByID(context, userID)
}

// deliver sends msg and logs a failure. Mail never fails the caller.
func (service *Service) deliver(ctx context.Context, msg mail.Message) {
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.BackgroundTaskTimeout)
	defer cancel()

	if err := service.mailer.Send(sendCtx, msg); err != nil {
		service.logger.WarnContext(ctx, "mail_delivery_failed",
			slog.String("subject", msg.Subject),
			slog.Any("error", err),
		)
	}
}

func checkPassword(validator *validate.Validator, field, password string) {
	validator.Required(field, password).
		MinLen(field, password, MinPasswordLength).
		MaxLen(field, password, MaxPasswordLength)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
