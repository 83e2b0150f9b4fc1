package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"cinebook/internal/data/entity"
	"cinebook/internal/data/repository"
	"cinebook/internal/dto/request"
	"cinebook/internal/dto/response"
	"cinebook/pkg/utils"

	"github.com/gosimple/slug"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const maxSlugAttempts = 50

type MovieService interface {
	GetMovies(ctx context.Context, req *request.MovieListRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	GetMovieByID(ctx context.Context, movieID int64) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID int64, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID int64) error
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context, req *request.MovieListRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	filter := entity.MovieFilter{
		Search: req.Search,
		Genre:  req.Genre,
		Rating: req.Rating,
		Limit:  req.Limit(),
		Offset: req.Offset(),
	}

	movies, err := s.repo.Movie.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get movies: %w", err)
	}

	total, err := s.repo.Movie.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count movies: %w", err)
	}

	return response.NewPaginatedResponse(response.MoviesToResponse(movies), filter.Limit, filter.Offset, total), nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID int64) (*response.MovieResponse, error) {
	movie, err := s.findMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create movie validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationError(errs)
	}

	releaseDate, err := time.Parse(response.DateLayout, req.ReleaseDate)
	if err != nil {
		return nil, utils.NewInvalidError(utils.CodeValidationFailed, "release_date must be YYYY-MM-DD")
	}

	movieSlug, err := s.uniqueSlug(ctx, req.Title)
	if err != nil {
		return nil, err
	}

	movie := &entity.Movie{
		Base:        entity.Base{CreatedAt: time.Now()},
		Title:       req.Title,
		Slug:        movieSlug,
		Description: req.Description,
		Duration:    req.Duration,
		Genre:       req.Genre,
		Rating:      req.Rating,
		PosterImage: req.PosterImage,
		TrailerURL:  req.TrailerURL,
		ReleaseDate: releaseDate,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.Int64("movie_id", movie.ID),
		zap.String("slug", movie.Slug),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID int64, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update movie validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationError(errs)
	}

	movie, err := s.findMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != movie.Title {
		movie.Title = *req.Title
		if movie.Slug, err = s.uniqueSlug(ctx, movie.Title); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		movie.Description = req.Description
	}
	if req.Duration != nil {
		movie.Duration = *req.Duration
	}
	if req.Genre != nil {
		movie.Genre = *req.Genre
	}
	if req.Rating != nil {
		movie.Rating = *req.Rating
	}
	if req.PosterImage != nil {
		movie.PosterImage = req.PosterImage
	}
	if req.TrailerURL != nil {
		movie.TrailerURL = req.TrailerURL
	}
	if req.ReleaseDate != nil {
		releaseDate, err := time.Parse(response.DateLayout, *req.ReleaseDate)
		if err != nil {
			return nil, utils.NewInvalidError(utils.CodeValidationFailed, "release_date must be YYYY-MM-DD")
		}
		movie.ReleaseDate = releaseDate
	}

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NewNotFoundError(utils.CodeMovieNotFound, "Movie not found")
		}
		return nil, fmt.Errorf("update movie: %w", err)
	}

	s.log.Info("Movie updated", zap.Int64("movie_id", movie.ID))

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID int64) error {
	deleted, err := s.repo.Movie.Delete(ctx, movieID)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return utils.NewConflictError(utils.CodeShowtimeHasBookings, "Movie has showtimes with bookings")
		}
		return fmt.Errorf("delete movie: %w", err)
	}
	if !deleted {
		return utils.NewNotFoundError(utils.CodeMovieNotFound, "Movie not found")
	}

	s.log.Info("Movie deleted", zap.Int64("movie_id", movieID))
	return nil
}

// ==================== HELPER METHODS ====================

func (s *movieService) findMovie(ctx context.Context, movieID int64) (*entity.Movie, error) {
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return nil, utils.NewNotFoundError(utils.CodeMovieNotFound, "Movie not found")
	}
	return movie, nil
}

// uniqueSlug derives a URL slug from the title, suffixing -2, -3, ... until
// it is unused.
func (s *movieService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "movie"
	}

	candidate := base
	for i := 2; i <= maxSlugAttempts+1; i++ {
		exists, err := s.repo.Movie.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(i)
	}

	return "", fmt.Errorf("no free slug for %q after %d attempts", title, maxSlugAttempts)
}
