package request

type MovieRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Duration    int     `json:"duration" validate:"required,gt=0,max=999"`
	Genre       string  `json:"genre" validate:"required,max=100"`
	Rating      string  `json:"rating" validate:"required,max=10"`
	PosterImage *string `json:"poster_image,omitempty" validate:"omitempty,url"`
	TrailerURL  *string `json:"trailer_url,omitempty" validate:"omitempty,url"`
	ReleaseDate string  `json:"release_date" validate:"required,datetime=2006-01-02"`
}

type MovieUpdateRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Duration    *int    `json:"duration,omitempty" validate:"omitempty,gt=0,max=999"`
	Genre       *string `json:"genre,omitempty" validate:"omitempty,min=1,max=100"`
	Rating      *string `json:"rating,omitempty" validate:"omitempty,min=1,max=10"`
	PosterImage *string `json:"poster_image,omitempty" validate:"omitempty,url"`
	TrailerURL  *string `json:"trailer_url,omitempty" validate:"omitempty,url"`
	ReleaseDate *string `json:"release_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type MovieListRequest struct {
	PaginatedRequest
	Search string
	Genre  string
	Rating string
}
