// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/hms/internal/platform/request"
	"github.com/taibuivan/hms/internal/platform/respond"
	"github.com/taibuivan/hms/internal/platform/session"
)

// Handler implements the HTTP layer for user account management.
//
// Every route expects the RequireUser middleware in front of it.
type Handler struct {
	accountService *Service
	sessions       *session.Manager
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service, sessions *session.Manager) *Handler {
	return &Handler{accountService: service, sessions: sessions}
}

// Routes registers the account endpoints on router.
//
// # Endpoints
//   - GET    /me           : Current profile.
//   - PATCH  /me           : Rename.
//   - DELETE /me           : Delete the account and end the session.
//   - POST   /me/password  : Change password.
func (handler *Handler) Routes(router chi.Router) {
	router.Get("/me", handler.getMe)
	router.Patch("/me", handler.updateMe)
	router.Delete("/me", handler.deleteMe)
	router.Post("/me/password", handler.changePassword)
}

// # User Profile Endpoints

func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PATCH /api/v1/me.

Request (Body):
  - name: string (empty clears it, at most 100 characters)

Response:
  - 200: User
  - 400: {errors}
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var form ProfileForm
	if err := requestutil.DecodeForm(request, &form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), userID, form)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DELETE /api/v1/me.

Response:
  - 204: Account deleted, session cookie expired
*/
func (handler *Handler) deleteMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.DeleteAccount(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.sessions.Clear(writer)
	respond.NoContent(writer)
}

/*
POST /api/v1/me/password.

Request (Body):
  - currentPassword: string
  - password: string (at least 8 characters)
  - passwordConfirm: string

Response:
  - 204: Password changed
  - 400: {errors}, errors.currentPassword when it does not match
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var form PasswordForm
	if err := requestutil.DecodeForm(request, &form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.ChangePassword(request.Context(), userID, form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
