package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"cinebook/internal/data/entity"
	"cinebook/internal/data/repository"
	"cinebook/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- In-memory store backing the fake repositories ---

type memStore struct {
	showtimes    map[int64]*entity.Showtime
	movies       map[int64]*entity.Movie
	seats        map[int64]*entity.Seat
	food         map[int64]*entity.FoodItem
	bookings     map[int64]*entity.Booking
	bookingSeats []*entity.BookingSeat
	bookingFood  []*entity.BookingFood
	nextID       int64

	// markBookedFn overrides MarkBooked when set, e.g. to simulate a seat
	// taken by a concurrent booking.
	markBookedFn func(seatID int64) bool
}

func newMemStore() *memStore {
	return &memStore{
		showtimes: map[int64]*entity.Showtime{},
		movies:    map[int64]*entity.Movie{},
		seats:     map[int64]*entity.Seat{},
		food:      map[int64]*entity.FoodItem{},
		bookings:  map[int64]*entity.Booking{},
		nextID:    100,
	}
}

func (s *memStore) repository() *repository.Repository {
	return &repository.Repository{
		Movie:       &fakeMovieRepo{s: s},
		Showtime:    &fakeShowtimeRepo{s: s},
		Seat:        &fakeSeatRepo{s: s},
		FoodItem:    &fakeFoodRepo{s: s},
		Booking:     &fakeBookingRepo{s: s},
		BookingSeat: &fakeBookingSeatRepo{s: s},
		BookingFood: &fakeBookingFoodRepo{s: s},
	}
}

// --- Mock MovieRepository ---

type fakeMovieRepo struct {
	repository.MovieRepository
	s *memStore
}

func (f *fakeMovieRepo) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	m, ok := f.s.movies[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMovieRepo) Create(ctx context.Context, m *entity.Movie) error {
	f.s.nextID++
	m.ID = f.s.nextID
	cp := *m
	f.s.movies[m.ID] = &cp
	return nil
}

func (f *fakeMovieRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	for _, m := range f.s.movies {
		if m.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

// --- Mock ShowtimeRepository ---

type fakeShowtimeRepo struct {
	repository.ShowtimeRepository
	s *memStore
}

func (f *fakeShowtimeRepo) FindByID(ctx context.Context, id int64) (*entity.Showtime, error) {
	st, ok := f.s.showtimes[id]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (f *fakeShowtimeRepo) Create(ctx context.Context, st *entity.Showtime) error {
	f.s.nextID++
	st.ID = f.s.nextID
	cp := *st
	f.s.showtimes[st.ID] = &cp
	return nil
}

func (f *fakeShowtimeRepo) FindByIDWithMovie(ctx context.Context, id int64) (*entity.ShowtimeWithMovie, error) {
	st, _ := f.FindByID(ctx, id)
	if st == nil {
		return nil, nil
	}
	out := &entity.ShowtimeWithMovie{Showtime: *st}
	if m, ok := f.s.movies[st.MovieID]; ok {
		cp := *m
		out.Movie = &cp
	}
	return out, nil
}

func (f *fakeShowtimeRepo) Update(ctx context.Context, st *entity.Showtime) error {
	if _, ok := f.s.showtimes[st.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *st
	f.s.showtimes[st.ID] = &cp
	return nil
}

func (f *fakeShowtimeRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := f.s.showtimes[id]; !ok {
		return false, nil
	}
	for _, b := range f.s.bookings {
		if b.ShowtimeID == id {
			return false, &pgconn.PgError{Code: "23503"}
		}
	}
	delete(f.s.showtimes, id)
	for seatID, seat := range f.s.seats {
		if seat.ShowtimeID == id {
			delete(f.s.seats, seatID)
		}
	}
	return true, nil
}

func (f *fakeShowtimeRepo) AdjustAvailableSeats(ctx context.Context, id int64, delta int) error {
	st, ok := f.s.showtimes[id]
	if !ok {
		return nil
	}
	if next := st.AvailableSeats + delta; next >= 0 && next <= st.TotalSeats {
		st.AvailableSeats = next
	}
	return nil
}

// --- Mock SeatRepository ---

type fakeSeatRepo struct {
	repository.SeatRepository
	s *memStore
}

func (f *fakeSeatRepo) FindByID(ctx context.Context, id int64) (*entity.Seat, error) {
	seat, ok := f.s.seats[id]
	if !ok {
		return nil, nil
	}
	cp := *seat
	return &cp, nil
}

func (f *fakeSeatRepo) FindByIDs(ctx context.Context, ids []int64) ([]*entity.Seat, error) {
	out := make([]*entity.Seat, 0, len(ids))
	for _, id := range ids {
		if seat, ok := f.s.seats[id]; ok {
			cp := *seat
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeSeatRepo) FindByShowtimeID(ctx context.Context, showtimeID int64) ([]*entity.Seat, error) {
	out := make([]*entity.Seat, 0)
	for _, seat := range f.s.seats {
		if seat.ShowtimeID == showtimeID {
			cp := *seat
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].SeatNumber < out[j].SeatNumber
	})
	return out, nil
}

func (f *fakeSeatRepo) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	for _, seat := range seats {
		f.s.nextID++
		seat.ID = f.s.nextID
		cp := *seat
		f.s.seats[seat.ID] = &cp
	}
	return nil
}

func (f *fakeSeatRepo) MarkBooked(ctx context.Context, seatID, showtimeID, bookingID int64) (bool, error) {
	if f.s.markBookedFn != nil && !f.s.markBookedFn(seatID) {
		return false, nil
	}
	seat, ok := f.s.seats[seatID]
	if !ok || seat.ShowtimeID != showtimeID || seat.IsBooked {
		return false, nil
	}
	seat.IsBooked = true
	seat.BookingID = &bookingID
	return true, nil
}

func (f *fakeSeatRepo) Release(ctx context.Context, seatIDs []int64, bookingID int64) (int64, error) {
	var n int64
	for _, id := range seatIDs {
		seat, ok := f.s.seats[id]
		if ok && seat.IsBooked && seat.BookingID != nil && *seat.BookingID == bookingID {
			seat.IsBooked = false
			n++
		}
	}
	return n, nil
}

func (f *fakeSeatRepo) SetBooked(ctx context.Context, id int64, isBooked bool, bookingID *int64) (*entity.Seat, error) {
	seat, ok := f.s.seats[id]
	if !ok {
		return nil, nil
	}
	seat.IsBooked = isBooked
	seat.BookingID = bookingID
	cp := *seat
	return &cp, nil
}

// --- Mock FoodItemRepository ---

type fakeFoodRepo struct {
	repository.FoodItemRepository
	s *memStore
}

func (f *fakeFoodRepo) FindByIDs(ctx context.Context, ids []int64) ([]*entity.FoodItem, error) {
	out := make([]*entity.FoodItem, 0, len(ids))
	for _, id := range ids {
		if item, ok := f.s.food[id]; ok {
			cp := *item
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeFoodRepo) Create(ctx context.Context, item *entity.FoodItem) error {
	f.s.nextID++
	item.ID = f.s.nextID
	cp := *item
	f.s.food[item.ID] = &cp
	return nil
}

func (f *fakeFoodRepo) FindByID(ctx context.Context, id int64) (*entity.FoodItem, error) {
	item, ok := f.s.food[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (f *fakeFoodRepo) matching(filter entity.FoodItemFilter) []*entity.FoodItem {
	var out []*entity.FoodItem
	for _, item := range f.s.food {
		if filter.Search != "" && !strings.Contains(strings.ToLower(item.Name), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.Available != nil && item.Available != *filter.Available {
			continue
		}
		cp := *item
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (f *fakeFoodRepo) FindAll(ctx context.Context, filter entity.FoodItemFilter) ([]*entity.FoodItem, error) {
	out := f.matching(filter)
	if filter.Offset >= len(out) {
		return []*entity.FoodItem{}, nil
	}
	out = out[filter.Offset:]
	if len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeFoodRepo) Count(ctx context.Context, filter entity.FoodItemFilter) (int64, error) {
	return int64(len(f.matching(filter))), nil
}

func (f *fakeFoodRepo) Update(ctx context.Context, item *entity.FoodItem) error {
	if _, ok := f.s.food[item.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *item
	f.s.food[item.ID] = &cp
	return nil
}

func (f *fakeFoodRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := f.s.food[id]; !ok {
		return false, nil
	}
	for _, line := range f.s.bookingFood {
		if line.FoodItemID == id {
			return false, &pgconn.PgError{Code: "23503"}
		}
	}
	delete(f.s.food, id)
	return true, nil
}

// --- Mock BookingRepository ---

type fakeBookingRepo struct {
	repository.BookingRepository
	s *memStore
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *entity.Booking) error {
	f.s.nextID++
	b.ID = f.s.nextID
	cp := *b
	f.s.bookings[b.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id int64) (*entity.Booking, error) {
	b, ok := f.s.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) FindByIDForUpdate(ctx context.Context, id int64) (*entity.Booking, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id int64, from, to entity.BookingStatus) (bool, error) {
	b, ok := f.s.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	return true, nil
}

func (f *fakeBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	out := make([]*entity.Booking, 0)
	for _, b := range f.s.bookings {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if offset >= len(out) {
		return []*entity.Booking{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, b := range f.s.bookings {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

// --- Mock BookingSeatRepository ---

type fakeBookingSeatRepo struct {
	repository.BookingSeatRepository
	s *memStore
}

func (f *fakeBookingSeatRepo) CreateBatch(ctx context.Context, links []*entity.BookingSeat) error {
	f.s.bookingSeats = append(f.s.bookingSeats, links...)
	return nil
}

func (f *fakeBookingSeatRepo) FindByBookingID(ctx context.Context, bookingID int64) ([]*entity.BookingSeat, error) {
	out := make([]*entity.BookingSeat, 0)
	for _, link := range f.s.bookingSeats {
		if link.BookingID == bookingID {
			out = append(out, link)
		}
	}
	return out, nil
}

func (f *fakeBookingSeatRepo) FindSeatsByBookingID(ctx context.Context, bookingID int64) ([]*entity.Seat, error) {
	links, _ := f.FindByBookingID(ctx, bookingID)
	ids := make([]int64, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.SeatID)
	}
	return (&fakeSeatRepo{s: f.s}).FindByIDs(ctx, ids)
}

// --- Mock BookingFoodRepository ---

type fakeBookingFoodRepo struct {
	repository.BookingFoodRepository
	s *memStore
}

func (f *fakeBookingFoodRepo) CreateBatch(ctx context.Context, lines []*entity.BookingFood) error {
	f.s.bookingFood = append(f.s.bookingFood, lines...)
	return nil
}

func (f *fakeBookingFoodRepo) FindLinesByBookingID(ctx context.Context, bookingID int64) ([]*entity.BookingFoodLine, error) {
	out := make([]*entity.BookingFoodLine, 0)
	for _, line := range f.s.bookingFood {
		if line.BookingID != bookingID {
			continue
		}
		item := f.s.food[line.FoodItemID]
		out = append(out, &entity.BookingFoodLine{BookingFood: *line, Name: item.Name, Price: item.Price})
	}
	return out, nil
}

// --- Mock DraftRepository ---

type memDrafts struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]entity.BookingDraft
}

func newMemDrafts() *memDrafts {
	return &memDrafts{drafts: map[uuid.UUID]entity.BookingDraft{}}
}

func (m *memDrafts) Get(ctx context.Context, userID uuid.UUID) (*entity.BookingDraft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drafts[userID]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (m *memDrafts) Save(ctx context.Context, userID uuid.UUID, draft *entity.BookingDraft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts[userID] = *draft
	return nil
}

func (m *memDrafts) Delete(ctx context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, userID)
	return nil
}

// --- Mock Publisher ---

type recordingPublisher struct {
	mu     sync.Mutex
	events []BookingEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ev, ok := payload.(BookingEvent); ok {
		p.events = append(p.events, ev)
	}
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Event)
	}
	return out
}

// --- Fixtures ---

// seedCinema stores showtime 1 (price 1200, seats A1..A4), showtime 2 with
// seat 9, an available popcorn at 500 and unavailable nachos.
func seedCinema(s *memStore) {
	s.movies[1] = &entity.Movie{Base: entity.Base{ID: 1}, Title: "Heat", Slug: "heat", Duration: 170}
	s.showtimes[1] = &entity.Showtime{
		Base:           entity.Base{ID: 1},
		MovieID:        1,
		ShowDate:       time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC),
		ShowTime:       "19:30",
		ScreenNumber:   3,
		TotalSeats:     4,
		AvailableSeats: 4,
		Price:          1200,
	}
	s.showtimes[2] = &entity.Showtime{Base: entity.Base{ID: 2}, MovieID: 1, TotalSeats: 1, AvailableSeats: 1, Price: 900}

	for i := int64(1); i <= 4; i++ {
		s.seats[i] = &entity.Seat{Base: entity.Base{ID: i}, ShowtimeID: 1, Row: "A", SeatNumber: int(i)}
	}
	s.seats[9] = &entity.Seat{Base: entity.Base{ID: 9}, ShowtimeID: 2, Row: "A", SeatNumber: 1}

	s.food[1] = &entity.FoodItem{Base: entity.Base{ID: 1}, Name: "Popcorn", Price: 500, Category: "snack", Available: true}
	s.food[2] = &entity.FoodItem{Base: entity.Base{ID: 2}, Name: "Nachos", Price: 700, Category: "snack", Available: false}
}

func requireAppError(t *testing.T, err error, kind utils.ErrorKind, code string) {
	t.Helper()
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	assert.Equal(t, kind, appErr.Kind)
	assert.Equal(t, code, appErr.Code)
}
