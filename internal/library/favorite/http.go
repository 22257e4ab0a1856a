// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorite

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/reelhub/internal/platform/request"
	"github.com/taibuivan/reelhub/internal/platform/respond"
)

// Handler serves the favorite endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates a new favorite [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the favorite routes; all of them require an account.
func (handler *Handler) RegisterRoutes(router chi.Router, requireAccount func(http.Handler) http.Handler) {
	router.Group(func(protected chi.Router) {
		protected.Use(requireAccount)

		protected.Get("/", handler.listFavorites)
		protected.Post("/", handler.addFavorite)
		protected.Delete("/{favoriteId}", handler.removeFavorite)
	})
}

func (handler *Handler) listFavorites(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	favorites, err := handler.service.List(request.Context(), principal.AccountID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, favorites)
}

/*
POST /api/v1/user/favorites.

Response:
  - 201: the new favorite
  - 200: the item was already a favorite; the stored one is returned
  - 400: validation failure
*/
func (handler *Handler) addFavorite(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input AddInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	favorite, created, err := handler.service.Add(request.Context(), principal.AccountID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if created {
		respond.Created(writer, favorite)
		return
	}
	respond.OK(writer, favorite)
}

func (handler *Handler) removeFavorite(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Remove(request.Context(), principal.AccountID, requestutil.Param(request, "favoriteId")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, nil)
}
