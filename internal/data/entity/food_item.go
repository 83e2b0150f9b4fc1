package entity

type FoodItem struct {
	Base
	Name        string  `db:"name"`
	Description *string `db:"description"`
	Price       int64   `db:"price"`
	Category    string  `db:"category"`
	ImageURL    *string `db:"image_url"`
	Available   bool    `db:"available"`
}

type FoodItemFilter struct {
	Search    string
	Category  string
	Available *bool
	Limit     int
	Offset    int
}
