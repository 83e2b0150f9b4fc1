package entity

import "time"

type Movie struct {
	Base
	Title       string    `db:"title"`
	Slug        string    `db:"slug"`
	Description *string   `db:"description"`
	Duration    int       `db:"duration"` // minutes
	Genre       string    `db:"genre"`
	Rating      string    `db:"rating"` // content rating, e.g. PG-13
	PosterImage *string   `db:"poster_image"`
	TrailerURL  *string   `db:"trailer_url"`
	ReleaseDate time.Time `db:"release_date"`
}

type MovieFilter struct {
	Search string
	Genre  string
	Rating string
	Limit  int
	Offset int
}
