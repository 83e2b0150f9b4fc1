package entity

type BookingFood struct {
	Base
	BookingID  int64 `db:"booking_id"`
	FoodItemID int64 `db:"food_item_id"`
	Quantity   int   `db:"quantity"`
}

// BookingFoodLine is a booking_food row joined with the item's name and
// current price.
type BookingFoodLine struct {
	BookingFood
	Name  string `db:"name"`
	Price int64  `db:"price"`
}
