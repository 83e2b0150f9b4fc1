package wire

import (
	"cinebook/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireFoodItem(r chi.Router, foodHandler *adaptor.FoodItemHandler, g guards) {
	// ==================== PUBLIC ROUTES ====================
	r.With(g.cache).Get("/api/food-items", foodHandler.GetFoodItems)
	r.With(g.cache).Get("/api/food-items/{id}", foodHandler.GetFoodItemByID)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/food-items", func(r chi.Router) {
		r.Use(g.auth)
		r.Use(g.admin)
		r.Use(g.invalidate)

		r.Post("/", foodHandler.CreateFoodItem)
		r.Put("/{id}", foodHandler.UpdateFoodItem)
		r.Delete("/{id}", foodHandler.DeleteFoodItem)
	})
}
