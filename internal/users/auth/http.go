// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/weebtsuki/internal/platform/middleware"
	requestutil "github.com/taibuivan/weebtsuki/internal/platform/request"
	"github.com/taibuivan/weebtsuki/internal/platform/respond"
	"github.com/taibuivan/weebtsuki/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register               : Creates an unverified account and mails a code.
//   - POST /verify-otp             : Confirms the e-mail address.
//   - POST /resend-otp             : Mails a fresh code.
//   - POST /login                  : Authenticates and returns a JWT.
//   - POST /forgot-password        : Mails a generated password.
//   - POST /request-password-reset : Mails a reset link.
//   - POST /reset-password         : Completes the reset link flow.
//   - POST /change-password        : Authenticated password change.
//   - GET  /me                     : Authenticated profile.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/verify-otp", handler.verifyOTP)
	router.Post("/resend-otp", handler.resendOTP)
	router.Post("/login", handler.login)
	router.Post("/forgot-password", handler.forgotPassword)
	router.Post("/request-password-reset", handler.requestPasswordReset)
	router.Post("/reset-password", handler.resetPassword)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/change-password", handler.changePassword)
		r.Get("/me", handler.me)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type otpRequest struct {
	UserID string `json:"userId"`
	OTP    string `json:"otp"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	GenerateNew     bool   `json:"generateNew"`
}

// message is the body of endpoints that only acknowledge.
func message(text string) map[string]string {
	return map[string]string{"message": text}
}

/*
Register handles the creation of a new user account.

POST /api/v1/auth/register

Response:
  - 201: {userId, message}
  - 400: ErrValidation
  - 409: ErrConflict: Email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]string{
		FieldUserID: user.ID,
		"message":   "Registration successful. Please check your email for OTP verification.",
	})
}

/*
POST /api/v1/auth/verify-otp

Response:
  - 200: {message}
  - 400: ErrValidation: Invalid or expired OTP
  - 404: ErrNotFound
*/
func (handler *Handler) verifyOTP(writer http.ResponseWriter, request *http.Request) {
	var input otpRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.authService.VerifyOTP(request.Context(), input.UserID, input.OTP); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, message("Email verified successfully. You can now login."))
}

// POST /api/v1/auth/resend-otp
func (handler *Handler) resendOTP(writer http.ResponseWriter, request *http.Request) {
	var input otpRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.authService.ResendOTP(request.Context(), input.UserID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, message("OTP resent successfully."))
}

/*
Login authenticates a user.

POST /api/v1/auth/login

Response:
  - 200: {token, tokenType, expiresIn, user}
  - 401: ErrUnauthorized: Invalid credentials
  - 403: VERIFICATION_REQUIRED: details carry the userId
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// POST /api/v1/auth/forgot-password
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input emailRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.authService.ForgotPassword(request.Context(), input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, message("New password generated and sent to your email."))
}

// POST /api/v1/auth/request-password-reset
func (handler *Handler) requestPasswordReset(writer http.ResponseWriter, request *http.Request) {
	var input emailRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.authService.RequestPasswordReset(request.Context(), input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, message("If the address is registered, a reset link has been sent."))
}

/*
POST /api/v1/auth/reset-password

Response:
  - 200: {message}
  - 400: ErrValidation: Weak password or invalid token
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.authService.ResetPassword(request.Context(), input.Token, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, message("Password reset successfully."))
}

/*
ChangePassword updates the caller's credentials.

POST /api/v1/auth/change-password

Request:
  - Body: changePasswordRequest (currentPassword, newPassword) or {generateNew: true}

Response:
  - 200: {message}
  - 400: ErrValidation: Wrong current password or weak new password
  - 401: ErrUnauthorized
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	err = handler.authService.ChangePassword(request.Context(), userID, ChangePasswordInput{
		CurrentPassword: input.CurrentPassword,
		NewPassword:     input.NewPassword,
		GenerateNew:     input.GenerateNew,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.GenerateNew {
		respond.OK(writer, message("New password generated and sent to your email."))
		return
	}
	respond.OK(writer, message("Password changed successfully."))
}

// GET /api/v1/auth/me
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Me(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
