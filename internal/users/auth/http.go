// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/hms/internal/platform/apperr"
	"github.com/taibuivan/hms/internal/platform/constants"
	"github.com/taibuivan/hms/internal/platform/dberr"
	"github.com/taibuivan/hms/internal/platform/middleware"
	requestutil "github.com/taibuivan/hms/internal/platform/request"
	"github.com/taibuivan/hms/internal/platform/respond"
	"github.com/taibuivan/hms/internal/platform/session"
)

// # Definitions & Constructors

// Handler implements the account access HTTP endpoints.
//
// # Scope
//
// The handler is a thin transport layer: it decodes submissions, calls
// [Service], and maps the outcome to a redirect or a JSON payload.
type Handler struct {
	authService *Service
	sessions    *session.Manager
	baseURL     string
}

// NewHandler constructs a new [Handler].
//
// baseURL is the public origin used in reset links; empty derives it from
// each request.
func NewHandler(service *Service, sessions *session.Manager, baseURL string) *Handler {
	return &Handler{authService: service, sessions: sessions, baseURL: strings.TrimRight(baseURL, "/")}
}

// Routes registers the account endpoints on router.
//
// # Endpoints
//   - GET  /                        : Current user (session required).
//   - POST /login                   : Starts a session.
//   - POST /register                : Creates an account and starts a session.
//   - POST /logout                  : Ends the session.
//   - POST /password-reset          : Issues a reset link.
//   - GET  /password-reset/{token}  : Checks a reset link.
//   - POST /password-reset/{token}  : Sets a new password.
func (handler *Handler) Routes(router chi.Router) {
	router.Get("/", handler.home)
	router.Post("/login", handler.login)
	router.Post("/register", handler.register)
	router.Post("/logout", handler.logout)
	router.Post("/password-reset", handler.requestReset)
	router.Get("/password-reset/{token}", handler.checkReset)
	router.Post("/password-reset/{token}", handler.resetPassword)
}

// # Response Payloads

type resetRequestResponse struct {
	Success  bool    `json:"success"`
	ResetURL *string `json:"resetUrl"`
}

type tokenCheckResponse struct {
	Success bool        `json:"success"`
	Data    *TokenInfo  `json:"data,omitempty"`
	Type    apperr.Kind `json:"type,omitempty"`
	Message string      `json:"message,omitempty"`
}

type homeResponse struct {
	User *User `json:"user"`
}

/*
Login authenticates a user and establishes a session.

POST /login

Request:
  - Body: LoginForm (email, password, redirectTo)

Response:
  - 303: Session cookie set; Location is redirectTo or "/"
  - 400: {errors}
  - 401: {authError}
  - 429: {authError} while locked out
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var form LoginForm
	if err := requestutil.DecodeForm(request, &form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Login(request.Context(), form, middleware.RealIP(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.sessions.CreateUserSession(writer, request, user.ID, form.RedirectTo); err != nil {
		respond.Error(writer, request, err)
	}
}

/*
Register creates an account and signs the new user in.

POST /register

Response:
  - 303: Session cookie set; Location "/"
  - 400: {errors}, including a duplicate email on errors.email
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var form RegisterForm
	if err := requestutil.DecodeForm(request, &form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), form)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.sessions.CreateUserSession(writer, request, user.ID, "/"); err != nil {
		respond.Error(writer, request, err)
	}
}

// logout clears the session cookie and sends the browser to /login.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	handler.sessions.Logout(writer, request)
}

/*
RequestReset issues a password reset link.

POST /password-reset

Response:
  - 200: {success:true, resetUrl} (resetUrl is null for unknown emails)
  - 400: {errors}
*/
func (handler *Handler) requestReset(writer http.ResponseWriter, request *http.Request) {
	var form ResetRequestForm
	if err := requestutil.DecodeForm(request, &form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.RequestPasswordReset(request.Context(), form, handler.resolveBaseURL(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, resetRequestResponse{Success: true, ResetURL: result.ResetURL})
}

/*
CheckReset reports whether a reset link can be used.

GET /password-reset/{token}

Response:
  - 200: {success:true, data:{email}}
  - 200: {success:false, type:"token", message} for invalid, used or expired links
*/
func (handler *Handler) checkReset(writer http.ResponseWriter, request *http.Request) {
	info, err := handler.authService.ValidateToken(request.Context(), requestutil.Param(request, "token"))
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.Kind == apperr.KindToken {
			respond.JSON(writer, http.StatusOK, tokenCheckResponse{Type: appError.Kind, Message: appError.Message})
			return
		}
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, tokenCheckResponse{Success: true, Data: info})
}

/*
ResetPassword sets a new password through a reset link.

POST /password-reset/{token}

Response:
  - 303: Location "/login?reset=success"
  - 400: {errors} or {tokenError}
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var form ResetPasswordForm
	if err := requestutil.DecodeForm(request, &form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ResetPassword(request.Context(), requestutil.Param(request, "token"), form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.SeeOther(writer, request, session.LoginPath+"?reset=success")
}

/*
Home returns the signed-in user.

GET /

Response:
  - 200: {user}
  - 303: to /login when there is no session, or when its account is gone
*/
func (handler *Handler) home(writer http.ResponseWriter, request *http.Request) {
	userID, err := handler.sessions.RequireUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.CurrentUser(request.Context(), userID)
	if err != nil {
		if dberr.IsNotFound(err) {
			handler.sessions.Logout(writer, request)
			return
		}
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, homeResponse{User: user})
}

// resolveBaseURL prefers the configured origin, then the proxy headers.
func (handler *Handler) resolveBaseURL(request *http.Request) string {
	if handler.baseURL != "" {
		return handler.baseURL
	}

	scheme := "http"
	if request.TLS != nil {
		scheme = "https"
	}
	if forwarded := request.Header.Get(constants.HeaderXForwardedProto); forwarded != "" {
		scheme = strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	return scheme + "://" + request.Host
}
