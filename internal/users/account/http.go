// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/reelhub/internal/platform/request"
	"github.com/taibuivan/reelhub/internal/platform/respond"
	"github.com/taibuivan/reelhub/internal/platform/validate"
	"github.com/taibuivan/reelhub/pkg/textnorm"
)

// # Definitions & Constructors

// Handler implements the /user endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

/*
RegisterRoutes mounts the account endpoints on router.

# Endpoints
  - POST /signup            : pipeline, 201 with token
  - POST /signin            : pipeline, 201 with token
  - POST /signin-external   : only when an identity verifier is configured
  - PUT  /update-password   : requireAccount, then pipeline
  - GET  /info              : requireAccount

Pipelines are built once here and evaluated per request.
*/
func (handler *Handler) RegisterRoutes(router chi.Router, requireAccount func(http.Handler) http.Handler) {
	signup := validate.NewPipeline(
		validate.Required(FieldUsername),
		validate.MinLength(FieldUsername, MinFieldLength),
		validate.Unique(FieldUsername, handler.accountService.UsernameTaken),
		validate.Required(FieldPassword),
		validate.MinLength(FieldPassword, MinFieldLength),
		validate.Required(FieldConfirmPassword),
		validate.MinLength(FieldConfirmPassword, MinFieldLength),
		validate.EqualsField(FieldConfirmPassword, FieldPassword),
		validate.Required(FieldDisplayName),
		validate.MinLength(FieldDisplayName, MinFieldLength),
	).
		Normalize(FieldUsername, textnorm.Identifier).
		Normalize(FieldDisplayName, textnorm.Identifier)

	signin := validate.NewPipeline(
		validate.Required(FieldUsername),
		validate.MinLength(FieldUsername, MinFieldLength),
		validate.Required(FieldPassword),
		validate.MinLength(FieldPassword, MinFieldLength),
	).Normalize(FieldUsername, textnorm.Identifier)

	updatePassword := validate.NewPipeline(
		validate.Required(FieldPassword),
		validate.MinLength(FieldPassword, MinFieldLength),
		validate.Required(FieldNewPassword),
		validate.MinLength(FieldNewPassword, MinFieldLength),
		validate.Required(FieldConfirmNewPassword),
		validate.MinLength(FieldConfirmNewPassword, MinFieldLength),
		validate.EqualsField(FieldConfirmNewPassword, FieldNewPassword),
	)

	// Public endpoints
	router.With(signup.Middleware()).Post("/signup", handler.signup)
	router.With(signin.Middleware()).Post("/signin", handler.signin)

	if handler.accountService.ExternalSigninEnabled() {
		external := validate.NewPipeline(validate.Required(FieldIDToken))
		router.With(external.Middleware()).Post("/signin-external", handler.signinExternal)
	}

	// Protected endpoints
	router.With(requireAccount, updatePassword.Middleware()).Put("/update-password", handler.updatePassword)
	router.With(requireAccount).Get("/info", handler.getInfo)
}

// # Request Payloads

type signupRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type signinRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updatePasswordRequest struct {
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
}

type signinExternalRequest struct {
	IDToken string `json:"idToken"`
}

/*
POST /api/v1/user/signup.

Response:
  - 201: Session (token + public profile)
  - 400: first violated rule, or "username already used"
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.accountService.Signup(request.Context(), SignupInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, session)
}

/*
POST /api/v1/user/signin.

Response:
  - 201: Session (token + public profile)
  - 400: INVALID_CREDENTIALS, same message for unknown user and wrong password
  - 429: too many failed attempts for this username
*/
func (handler *Handler) signin(writer http.ResponseWriter, request *http.Request) {
	var input signinRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.accountService.Signin(request.Context(), SigninInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, session)
}

// POST /api/v1/user/signin-external. 201 with a session, 401 on any rejected token.
func (handler *Handler) signinExternal(writer http.ResponseWriter, request *http.Request) {
	var input signinExternalRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.accountService.SigninExternal(request.Context(), input.IDToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, session)
}

/*
PUT /api/v1/user/update-password.

Response:
  - 200: password replaced
  - 400: pipeline violation or "Wrong password"
  - 401: missing/invalid session or account gone
*/
func (handler *Handler) updatePassword(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updatePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.UpdatePassword(request.Context(), principal.AccountID, UpdatePasswordInput(input)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, nil)
}

// GET /api/v1/user/info. 200 with the public profile, 404 if the account is gone.
func (handler *Handler) getInfo(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.GetInfo(request.Context(), principal.AccountID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}
