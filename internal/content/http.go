// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/reelflix/internal/platform/constants"
	"github.com/taibuivan/reelflix/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/reelflix/internal/platform/request"
	"github.com/taibuivan/reelflix/internal/platform/respond"
	"github.com/taibuivan/reelflix/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the content proxy endpoints.
type Handler struct {
	contentService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{contentService: service}
}

/*
TypeRoutes returns the browsing routes of one content type.

# Endpoints
  - GET /trending      : One random trending item.
  - GET /{category}    : First page of a category list.
  - GET /{id}/details  : Full record.
  - GET /{id}/trailers : Videos.
  - GET /{id}/similar  : Similar titles.
*/
func (handler *Handler) TypeRoutes(contentType Type) chi.Router {
	router := chi.NewRouter()

	router.Get("/trending", handler.trending(contentType))
	router.Get("/{category}", handler.category(contentType))
	router.Get("/{id}/details", handler.details(contentType))
	router.Get("/{id}/trailers", handler.trailers(contentType))
	router.Get("/{id}/similar", handler.similar(contentType))

	return router
}

/*
SearchRoutes returns the search and search-history routes.

# Endpoints
  - GET    /history              : The caller's recent searches.
  - DELETE /history/{id}         : Forget one search.
  - GET    /{searchType}/{query} : Run a search.
*/
func (handler *Handler) SearchRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/history", handler.history)
	router.Delete("/history/{id}", handler.removeHistory)
	router.Get("/{searchType}/{query}", handler.search)

	return router
}

// # Browsing Handlers

func (handler *Handler) trending(contentType Type) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		item, err := handler.contentService.GetTrending(request.Context(), contentType)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, respond.Body{constants.FieldContent: item})
	}
}

func (handler *Handler) category(contentType Type) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		category := requestutil.Param(request, FieldCategory)

		items, err := handler.contentService.GetByCategory(request.Context(), contentType, category)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, respond.Body{constants.FieldContent: items})
	}
}

func (handler *Handler) details(contentType Type) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, err := requestutil.IntParam(request, FieldID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		details, err := handler.contentService.GetDetails(request.Context(), contentType, id)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, respond.Body{constants.FieldContent: details})
	}
}

func (handler *Handler) trailers(contentType Type) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, err := requestutil.IntParam(request, FieldID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		trailers, err := handler.contentService.GetTrailers(request.Context(), contentType, id)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, respond.Body{constants.FieldTrailers: trailers})
	}
}

func (handler *Handler) similar(contentType Type) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, err := requestutil.IntParam(request, FieldID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		items, err := handler.contentService.GetSimilar(request.Context(), contentType, id)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, respond.Body{constants.FieldSimilar: items})
	}
}

// # Search Handlers

/*
Search runs a query against one index.

GET /api/v1/search/{searchType}/{query}

Response:
  - 200: { success, results }
  - 400: VALIDATION_ERROR: Unknown search type or empty query
  - 404: NOT_FOUND: Nothing matched
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	query := requestutil.Param(request, FieldQuery)

	// chi routes on the raw path when one exists, leaving params escaped.
	if request.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(query)
		if err != nil {
			respond.Error(writer, request, validate.RequiredError(FieldQuery, "Malformed query"))
			return
		}
		query = unescaped
	}

	searchType := SearchType(requestutil.Param(request, FieldSearchType))

	results, err := handler.contentService.Search(request.Context(), userID, searchType, query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.Body{constants.FieldResults: results})
}

/*
History lists the caller's recent searches.

GET /api/v1/search/history

Response:
  - 200: { success, content }
*/
func (handler *Handler) history(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, err := handler.contentService.History(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.Body{constants.FieldContent: entries})
}

/*
RemoveHistory forgets one of the caller's searches.

DELETE /api/v1/search/history/{id}

Response:
  - 200: { success, message }
  - 404: NOT_FOUND: Absent or owned by another user
*/
func (handler *Handler) removeHistory(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.contentService.RemoveHistory(request.Context(), userID, requestutil.Param(request, FieldID)); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.Body{constants.FieldMessage: "Removed from search history"})
}

// # Diagnostics

/*
TMDBTest reports whether the metadata provider accepts our credential.

GET /api/v1/tmdb-test

Response:
  - 200: { success: bool }
*/
func (handler *Handler) TMDBTest(writer http.ResponseWriter, request *http.Request) {
	err := handler.contentService.Ping(request.Context())
	if err != nil {
		ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "upstream_probe_failed",
			slog.Any("cause", errors.Unwrap(err)),
		)
	}
	respond.JSON(writer, http.StatusOK, respond.Body{constants.FieldSuccess: err == nil})
}
