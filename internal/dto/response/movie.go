package response

import (
	"time"

	"cinebook/internal/data/entity"
)

const DateLayout = "2006-01-02"

type MovieResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	Duration    int       `json:"duration"`
	Genre       string    `json:"genre"`
	Rating      string    `json:"rating"`
	PosterImage *string   `json:"poster_image,omitempty"`
	TrailerURL  *string   `json:"trailer_url,omitempty"`
	ReleaseDate string    `json:"release_date"`
	CreatedAt   time.Time `json:"created_at"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:          movie.ID,
		Title:       movie.Title,
		Slug:        movie.Slug,
		Description: movie.Description,
		Duration:    movie.Duration,
		Genre:       movie.Genre,
		Rating:      movie.Rating,
		PosterImage: movie.PosterImage,
		TrailerURL:  movie.TrailerURL,
		ReleaseDate: movie.ReleaseDate.Format(DateLayout),
		CreatedAt:   movie.CreatedAt,
	}
}

func MoviesToResponse(movies []*entity.Movie) []MovieResponse {
	out := make([]MovieResponse, 0, len(movies))
	for _, m := range movies {
		out = append(out, MovieToResponse(m))
	}
	return out
}
