package adaptor

import (
	"net/http"

	"cinebook/internal/dto/request"
	"cinebook/internal/usecase"
	"cinebook/pkg/utils"

	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetMovies handles GET /api/movies?search=&genre=&rating=&limit=&offset=
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.MovieListRequest{
		PaginatedRequest: request.PaginationFromQuery(query),
		Search:           query.Get("search"),
		Genre:            query.Get("genre"),
		Rating:           query.Get("rating"),
	}

	movies, err := h.service.GetMovies(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get movies")
		return
	}

	utils.ResponseSuccess(w, "Movies retrieved successfully", movies)
}

// GetMovieByID handles GET /api/movies/{id}
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "get movie")
		return
	}

	movie, err := h.service.GetMovieByID(r.Context(), movieID)
	if err != nil {
		handleServiceError(w, h.log, err, "get movie")
		return
	}

	utils.ResponseSuccess(w, "Movie retrieved successfully", movie)
}

// CreateMovie handles POST /api/admin/movies
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		handleServiceError(w, h.log, err, "create movie")
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create movie")
		return
	}

	utils.ResponseCreated(w, "Movie created successfully", movie)
}

// UpdateMovie handles PUT /api/admin/movies/{id}
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "update movie")
		return
	}

	var req request.MovieUpdateRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		handleServiceError(w, h.log, err, "update movie")
		return
	}

	movie, err := h.service.UpdateMovie(r.Context(), movieID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update movie")
		return
	}

	utils.ResponseSuccess(w, "Movie updated successfully", movie)
}

// DeleteMovie handles DELETE /api/admin/movies/{id}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "delete movie")
		return
	}

	if err := h.service.DeleteMovie(r.Context(), movieID); err != nil {
		handleServiceError(w, h.log, err, "delete movie")
		return
	}

	utils.ResponseSuccess(w, "Movie deleted successfully", nil)
}
