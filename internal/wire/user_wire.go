package wire

import (
	"cinebook/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, g guards) {
	// ==================== PROTECTED USER ROUTES ====================
	r.With(g.auth).Get("/api/user/profile", userHandler.GetProfile)

	// ==================== ADMIN ROUTES ====================
	r.With(g.auth, g.admin).Get("/api/admin/users", userHandler.GetAllUsers) // ?limit=&offset=
}
