// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/reelhub/internal/platform/request"
	"github.com/taibuivan/reelhub/internal/platform/respond"
)

// Handler serves the review endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates a new review [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

/*
RegisterRoutes mounts the review routes.

# Endpoints
  - GET    /media/{mediaType}/{mediaId} : public
  - GET    /                            : caller's reviews
  - POST   /                            : 201 with the author projection
  - DELETE /{reviewId}                  : author only
*/
func (handler *Handler) RegisterRoutes(router chi.Router, requireAccount func(http.Handler) http.Handler) {
	// Public
	router.Get("/media/{mediaType}/{mediaId}", handler.listByMedia)

	// Authenticated
	router.Group(func(protected chi.Router) {
		protected.Use(requireAccount)

		protected.Get("/", handler.listMine)
		protected.Post("/", handler.createReview)
		protected.Delete("/{reviewId}", handler.removeReview)
	})
}

func (handler *Handler) listByMedia(writer http.ResponseWriter, request *http.Request) {
	reviews, err := handler.service.ListByMedia(request.Context(),
		requestutil.Param(request, "mediaType"),
		requestutil.Param(request, "mediaId"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, reviews)
}

func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	reviews, err := handler.service.ListByAccount(request.Context(), principal.AccountID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, reviews)
}

func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Create(request.Context(), principal, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, review)
}

func (handler *Handler) removeReview(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Remove(request.Context(), principal.AccountID, requestutil.Param(request, "reviewId")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, nil)
}
