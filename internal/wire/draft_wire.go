package wire

import (
	"cinebook/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireDraft(r chi.Router, draftHandler *adaptor.DraftHandler, g guards) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Route("/api/booking-draft", func(r chi.Router) {
		r.Use(g.auth)

		r.Get("/", draftHandler.GetDraft)
		r.Post("/actions", draftHandler.ApplyAction)
		r.Post("/checkout", draftHandler.Checkout)
	})
}
