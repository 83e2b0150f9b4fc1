package usecase

import (
	"sort"

	"cinebook/internal/data/entity"
)

// MaxFoodQuantity is the largest quantity allowed on one food line.
const MaxFoodQuantity = 100

// Price totals a selection: seatCount tickets at unitPrice plus each food
// line's unit price times quantity. Lines are returned ordered by item id
// with LineTotal filled in. No tax or fees apply.
func Price(seatCount int, unitPrice int64, food []entity.QuoteLine) entity.Quote {
	q := entity.Quote{
		SeatCount:      seatCount,
		UnitPrice:      unitPrice,
		TicketSubtotal: int64(seatCount) * unitPrice,
		Lines:          make([]entity.QuoteLine, 0, len(food)),
	}

	for _, line := range food {
		line.LineTotal = line.UnitPrice * int64(line.Quantity)
		q.FoodSubtotal += line.LineTotal
		q.Lines = append(q.Lines, line)
	}
	sort.Slice(q.Lines, func(i, j int) bool { return q.Lines[i].FoodItemID < q.Lines[j].FoodItemID })

	q.Total = q.TicketSubtotal + q.FoodSubtotal
	return q
}
