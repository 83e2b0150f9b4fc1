package response

import (
	"time"

	"cinebook/internal/data/entity"
)

type ShowtimeResponse struct {
	ID             int64          `json:"id"`
	MovieID        int64          `json:"movie_id"`
	ShowDate       string         `json:"show_date"`
	ShowTime       string         `json:"show_time"`
	ScreenNumber   int            `json:"screen_number"`
	TotalSeats     int            `json:"total_seats"`
	AvailableSeats int            `json:"available_seats"`
	Price          int64          `json:"price"`
	CreatedAt      time.Time      `json:"created_at"`
	Movie          *MovieResponse `json:"movie,omitempty"`
}

func ShowtimeToResponse(st *entity.Showtime) ShowtimeResponse {
	return ShowtimeResponse{
		ID:             st.ID,
		MovieID:        st.MovieID,
		ShowDate:       st.ShowDate.Format(DateLayout),
		ShowTime:       st.ShowTime,
		ScreenNumber:   st.ScreenNumber,
		TotalSeats:     st.TotalSeats,
		AvailableSeats: st.AvailableSeats,
		Price:          st.Price,
		CreatedAt:      st.CreatedAt,
	}
}

func ShowtimeWithMovieToResponse(st *entity.ShowtimeWithMovie) ShowtimeResponse {
	resp := ShowtimeToResponse(&st.Showtime)
	if st.Movie != nil {
		movie := MovieToResponse(st.Movie)
		resp.Movie = &movie
	}
	return resp
}

func ShowtimesToResponse(showtimes []*entity.Showtime) []ShowtimeResponse {
	out := make([]ShowtimeResponse, 0, len(showtimes))
	for _, st := range showtimes {
		out = append(out, ShowtimeToResponse(st))
	}
	return out
}
