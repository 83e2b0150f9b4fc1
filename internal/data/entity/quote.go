package entity

// QuoteLine is one priced food selection.
type QuoteLine struct {
	FoodItemID int64
	Name       string
	UnitPrice  int64
	Quantity   int
	LineTotal  int64
}

// Quote is the price breakdown of a seat and food selection.
type Quote struct {
	SeatCount      int
	UnitPrice      int64
	TicketSubtotal int64
	FoodSubtotal   int64
	Total          int64
	Lines          []QuoteLine
}
