package repository

import (
	"context"
	"fmt"

	"cinebook/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	db  database.DBTX
	log *zap.Logger

	User        UserRepository
	Session     SessionRepository
	Movie       MovieRepository
	Showtime    ShowtimeRepository
	Seat        SeatRepository
	FoodItem    FoodItemRepository
	Booking     BookingRepository
	BookingSeat BookingSeatRepository
	BookingFood BookingFoodRepository
}

func NewRepository(db database.DBTX, log *zap.Logger) *Repository {
	return &Repository{
		db:          db,
		log:         log,
		User:        NewUserRepository(db, log),
		Session:     NewSessionRepository(db, log),
		Movie:       NewMovieRepository(db, log),
		Showtime:    NewShowtimeRepository(db, log),
		Seat:        NewSeatRepository(db, log),
		FoodItem:    NewFoodItemRepository(db, log),
		Booking:     NewBookingRepository(db, log),
		BookingSeat: NewBookingSeatRepository(db, log),
		BookingFood: NewBookingFoodRepository(db, log),
	}
}

// WithTx runs fn with repositories bound to one transaction. The transaction
// commits when fn returns nil and rolls back otherwise, including on panic.
// A Repository assembled without a database handle runs fn against itself.
func (r *Repository) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			r.log.Warn("Failed to roll back transaction", zap.Error(rbErr))
		}
	}()

	if err := fn(NewRepository(tx, r.log)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	committed = true

	return nil
}
