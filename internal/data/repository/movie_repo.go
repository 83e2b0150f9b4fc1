package repository

import (
	"context"
	"errors"
	"fmt"

	"cinebook/internal/data/entity"
	"cinebook/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id int64) (*entity.Movie, error)
	FindAll(ctx context.Context, filter entity.MovieFilter) ([]*entity.Movie, error)
	Count(ctx context.Context, filter entity.MovieFilter) (int64, error)
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, id int64) (bool, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type movieRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewMovieRepository(db database.DBTX, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

const movieColumns = `id, title, slug, description, duration, genre, rating,
	poster_image, trailer_url, release_date, created_at`

func scanMovie(row rowScanner) (*entity.Movie, error) {
	var movie entity.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Slug,
		&movie.Description,
		&movie.Duration,
		&movie.Genre,
		&movie.Rating,
		&movie.PosterImage,
		&movie.TrailerURL,
		&movie.ReleaseDate,
		&movie.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (title, slug, description, duration, genre, rating,
		                    poster_image, trailer_url, release_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		movie.Title,
		movie.Slug,
		movie.Description,
		movie.Duration,
		movie.Genre,
		movie.Rating,
		movie.PosterImage,
		movie.TrailerURL,
		movie.ReleaseDate,
		movie.CreatedAt,
	).Scan(&movie.ID)

	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("create movie %q: %w", movie.Title, err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	movie, err := scanMovie(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return nil, fmt.Errorf("find movie by ID %d: %w", id, err)
	}

	return movie, nil
}

func movieWhere(filter entity.MovieFilter) *whereBuilder {
	w := &whereBuilder{}
	if filter.Search != "" {
		w.add("title ILIKE $%d", likePattern(filter.Search))
	}
	if filter.Genre != "" {
		w.add("genre = $%d", filter.Genre)
	}
	if filter.Rating != "" {
		w.add("rating = $%d", filter.Rating)
	}
	return w
}

func (r *movieRepository) FindAll(ctx context.Context, filter entity.MovieFilter) ([]*entity.Movie, error) {
	w := movieWhere(filter)
	suffix, args := w.page(filter.Limit, filter.Offset)
	query := `SELECT ` + movieColumns + ` FROM movies` + w.clause() +
		` ORDER BY created_at DESC, id DESC` + suffix

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find movies",
			zap.Error(err),
			zap.Int("limit", filter.Limit),
			zap.Int("offset", filter.Offset),
		)
		return nil, fmt.Errorf("find movies: %w", err)
	}
	defer rows.Close()

	movies := make([]*entity.Movie, 0)
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate movies: %w", err)
	}

	r.log.Debug("Movies found",
		zap.Int("count", len(movies)),
		zap.Int("limit", filter.Limit),
		zap.Int("offset", filter.Offset),
	)

	return movies, nil
}

func (r *movieRepository) Count(ctx context.Context, filter entity.MovieFilter) (int64, error) {
	w := movieWhere(filter)
	query := `SELECT COUNT(*) FROM movies` + w.clause()

	var total int64
	if err := r.db.QueryRow(ctx, query, w.args...).Scan(&total); err != nil {
		r.log.Error("Failed to count movies", zap.Error(err))
		return 0, fmt.Errorf("count movies: %w", err)
	}

	return total, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET title = $2, slug = $3, description = $4, duration = $5, genre = $6,
		    rating = $7, poster_image = $8, trailer_url = $9, release_date = $10
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Slug,
		movie.Description,
		movie.Duration,
		movie.Genre,
		movie.Rating,
		movie.PosterImage,
		movie.TrailerURL,
		movie.ReleaseDate,
	)

	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.Int64("movie_id", movie.ID),
		)
		return fmt.Errorf("update movie %d: %w", movie.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update movie %d: %w", movie.ID, pgx.ErrNoRows)
	}

	return nil
}

func (r *movieRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return false, fmt.Errorf("delete movie %d: %w", id, err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *movieRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM movies WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check movie slug", zap.Error(err), zap.String("slug", slug))
		return false, fmt.Errorf("check movie slug %q: %w", slug, err)
	}
	return exists, nil
}
