package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinebook/internal/data/entity"
	"cinebook/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *entity.Showtime) error
	FindByID(ctx context.Context, id int64) (*entity.Showtime, error)
	FindByIDWithMovie(ctx context.Context, id int64) (*entity.ShowtimeWithMovie, error)
	FindAll(ctx context.Context, filter entity.ShowtimeFilter) ([]*entity.Showtime, error)
	Count(ctx context.Context, filter entity.ShowtimeFilter) (int64, error)
	Update(ctx context.Context, showtime *entity.Showtime) error
	Delete(ctx context.Context, id int64) (bool, error)

	// Seat counter maintenance
	AdjustAvailableSeats(ctx context.Context, id int64, delta int) error
	ReconcileAvailableSeats(ctx context.Context) (int64, error)
}

type showtimeRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewShowtimeRepository(db database.DBTX, log *zap.Logger) ShowtimeRepository {
	return &showtimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "showtime")),
	}
}

const showtimeColumns = `id, movie_id, show_date, show_time, screen_number,
	total_seats, available_seats, price, created_at`

func scanShowtime(row rowScanner) (*entity.Showtime, error) {
	var st entity.Showtime
	err := row.Scan(
		&st.ID,
		&st.MovieID,
		&st.ShowDate,
		&st.ShowTime,
		&st.ScreenNumber,
		&st.TotalSeats,
		&st.AvailableSeats,
		&st.Price,
		&st.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *showtimeRepository) Create(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		INSERT INTO showtimes (movie_id, show_date, show_time, screen_number,
		                       total_seats, available_seats, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		showtime.MovieID,
		showtime.ShowDate,
		showtime.ShowTime,
		showtime.ScreenNumber,
		showtime.TotalSeats,
		showtime.AvailableSeats,
		showtime.Price,
		showtime.CreatedAt,
	).Scan(&showtime.ID)

	if err != nil {
		r.log.Error("Failed to create showtime",
			zap.Error(err),
			zap.Int64("movie_id", showtime.MovieID),
		)
		return fmt.Errorf("create showtime for movie %d: %w", showtime.MovieID, err)
	}

	return nil
}

func (r *showtimeRepository) FindByID(ctx context.Context, id int64) (*entity.Showtime, error) {
	query := `SELECT ` + showtimeColumns + ` FROM showtimes WHERE id = $1`

	st, err := scanShowtime(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime by ID",
			zap.Error(err),
			zap.Int64("showtime_id", id),
		)
		return nil, fmt.Errorf("find showtime by ID %d: %w", id, err)
	}

	return st, nil
}

func (r *showtimeRepository) FindByIDWithMovie(ctx context.Context, id int64) (*entity.ShowtimeWithMovie, error) {
	query := `
		SELECT s.id, s.movie_id, s.show_date, s.show_time, s.screen_number,
		       s.total_seats, s.available_seats, s.price, s.created_at,
		       m.id, m.title, m.slug, m.description, m.duration, m.genre, m.rating,
		       m.poster_image, m.trailer_url, m.release_date, m.created_at
		FROM showtimes s
		LEFT JOIN movies m ON m.id = s.movie_id
		WHERE s.id = $1
	`

	var (
		out   entity.ShowtimeWithMovie
		movie struct {
			ID          *int64
			Title       *string
			Slug        *string
			Description *string
			Duration    *int
			Genre       *string
			Rating      *string
			PosterImage *string
			TrailerURL  *string
			ReleaseDate *time.Time
			CreatedAt   *time.Time
		}
	)

	err := r.db.QueryRow(ctx, query, id).Scan(
		&out.ID,
		&out.MovieID,
		&out.ShowDate,
		&out.ShowTime,
		&out.ScreenNumber,
		&out.TotalSeats,
		&out.AvailableSeats,
		&out.Price,
		&out.CreatedAt,
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
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime with movie",
			zap.Error(err),
			zap.Int64("showtime_id", id),
		)
		return nil, fmt.Errorf("find showtime %d with movie: %w", id, err)
	}

	if movie.ID != nil {
		out.Movie = &entity.Movie{
			Base:        entity.Base{ID: *movie.ID},
			Title:       deref(movie.Title),
			Slug:        deref(movie.Slug),
			Description: movie.Description,
			Duration:    deref(movie.Duration),
			Genre:       deref(movie.Genre),
			Rating:      deref(movie.Rating),
			PosterImage: movie.PosterImage,
			TrailerURL:  movie.TrailerURL,
		}
		if movie.ReleaseDate != nil {
			out.Movie.ReleaseDate = *movie.ReleaseDate
		}
		if movie.CreatedAt != nil {
			out.Movie.CreatedAt = *movie.CreatedAt
		}
	}

	return &out, nil
}

func showtimeWhere(filter entity.ShowtimeFilter) *whereBuilder {
	w := &whereBuilder{}
	if filter.MovieID != nil {
		w.add("movie_id = $%d", *filter.MovieID)
	}
	if filter.Date != nil {
		w.add("show_date = $%d", *filter.Date)
	}
	if filter.ScreenNumber != nil {
		w.add("screen_number = $%d", *filter.ScreenNumber)
	}
	return w
}

func (r *showtimeRepository) FindAll(ctx context.Context, filter entity.ShowtimeFilter) ([]*entity.Showtime, error) {
	w := showtimeWhere(filter)
	suffix, args := w.page(filter.Limit, filter.Offset)
	query := `SELECT ` + showtimeColumns + ` FROM showtimes` + w.clause() +
		` ORDER BY created_at DESC, id DESC` + suffix

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find showtimes",
			zap.Error(err),
			zap.Int("limit", filter.Limit),
			zap.Int("offset", filter.Offset),
		)
		return nil, fmt.Errorf("find showtimes: %w", err)
	}
	defer rows.Close()

	showtimes := make([]*entity.Showtime, 0)
	for rows.Next() {
		st, err := scanShowtime(rows)
		if err != nil {
			r.log.Error("Failed to scan showtime row", zap.Error(err))
			return nil, fmt.Errorf("scan showtime: %w", err)
		}
		showtimes = append(showtimes, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate showtimes: %w", err)
	}

	return showtimes, nil
}

func (r *showtimeRepository) Count(ctx context.Context, filter entity.ShowtimeFilter) (int64, error) {
	w := showtimeWhere(filter)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM showtimes`+w.clause(), w.args...).Scan(&total); err != nil {
		r.log.Error("Failed to count showtimes", zap.Error(err))
		return 0, fmt.Errorf("count showtimes: %w", err)
	}

	return total, nil
}

// Update rewrites schedule fields and price. Seat counts are owned by the
// seat inventory and are not touched here.
func (r *showtimeRepository) Update(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		UPDATE showtimes
		SET movie_id = $2, show_date = $3, show_time = $4, screen_number = $5, price = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		showtime.ID,
		showtime.MovieID,
		showtime.ShowDate,
		showtime.ShowTime,
		showtime.ScreenNumber,
		showtime.Price,
	)
	if err != nil {
		r.log.Error("Failed to update showtime",
			zap.Error(err),
			zap.Int64("showtime_id", showtime.ID),
		)
		return fmt.Errorf("update showtime %d: %w", showtime.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update showtime %d: %w", showtime.ID, pgx.ErrNoRows)
	}

	return nil
}

func (r *showtimeRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM showtimes WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete showtime",
			zap.Error(err),
			zap.Int64("showtime_id", id),
		)
		return false, fmt.Errorf("delete showtime %d: %w", id, err)
	}

	return result.RowsAffected() > 0, nil
}

// AdjustAvailableSeats moves the counter by delta, keeping it within
// [0, total_seats].
func (r *showtimeRepository) AdjustAvailableSeats(ctx context.Context, id int64, delta int) error {
	query := `
		UPDATE showtimes
		SET available_seats = available_seats + $2
		WHERE id = $1
		  AND available_seats + $2 BETWEEN 0 AND total_seats
	`

	result, err := r.db.Exec(ctx, query, id, delta)
	if err != nil {
		r.log.Error("Failed to adjust available seats",
			zap.Error(err),
			zap.Int64("showtime_id", id),
			zap.Int("delta", delta),
		)
		return fmt.Errorf("adjust available seats for showtime %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		r.log.Warn("Available seat counter out of range, leaving it for reconciliation",
			zap.Int64("showtime_id", id),
			zap.Int("delta", delta),
		)
	}

	return nil
}

// ReconcileAvailableSeats recomputes available_seats from the seat rows and
// returns how many showtimes were corrected.
func (r *showtimeRepository) ReconcileAvailableSeats(ctx context.Context) (int64, error) {
	query := `
		UPDATE showtimes s
		SET available_seats = c.free
		FROM (
			SELECT showtime_id, COUNT(*) FILTER (WHERE NOT is_booked) AS free
			FROM seats
			GROUP BY showtime_id
		) c
		WHERE c.showtime_id = s.id
		  AND s.available_seats <> c.free
	`

	result, err := r.db.Exec(ctx, query)
	if err != nil {
		r.log.Error("Failed to reconcile available seats", zap.Error(err))
		return 0, fmt.Errorf("reconcile available seats: %w", err)
	}

	return result.RowsAffected(), nil
}
