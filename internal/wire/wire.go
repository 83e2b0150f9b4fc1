package wire

import (
	"net/http"

	"cinebook/internal/adaptor"
	"cinebook/internal/data/repository"
	"cinebook/internal/usecase"
	"cinebook/pkg/database"
	"cinebook/pkg/messaging"
	"cinebook/pkg/middleware"
	"cinebook/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds the router and the use cases the scheduler needs.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// guards are the route middlewares shared by every wire function.
type guards struct {
	auth       func(http.Handler) http.Handler
	admin      func(http.Handler) http.Handler
	cache      func(http.Handler) http.Handler
	invalidate func(http.Handler) http.Handler
}

// Wiring builds repositories, use cases, handlers and routes. rdb may be nil,
// which disables drafts and the catalog cache.
func Wiring(db database.PgxIface, rdb *redis.Client, publisher messaging.Publisher, config *utils.Config, logger *zap.Logger) *App {
	repo := repository.NewRepository(db, logger)

	var drafts repository.DraftRepository
	if rdb != nil {
		drafts = repository.NewDraftRepository(rdb, config.Redis.DraftTTL, logger)
	}

	service := usecase.NewService(repo, drafts, publisher, config, logger)
	handler := adaptor.NewHandler(service, adaptor.NewHealthHandler(db, rdb, logger), logger)

	g := guards{
		auth:       middleware.AuthSession(repo.Session, logger),
		admin:      middleware.Admin(logger),
		cache:      middleware.Cache(rdb, config.Cache, logger),
		invalidate: middleware.InvalidateCache(rdb, config.Cache, logger),
	}

	return &App{
		Router:  setupRouter(handler, g, config, logger),
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, g guards, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.AllowedOrigins))

	wireAuth(r, handler.Auth, g)
	wireUser(r, handler.User, g)
	wireMovie(r, handler.Movie, g)
	wireShowtime(r, handler.Showtime, handler.Seat, g)
	wireFoodItem(r, handler.FoodItem, g)
	wireBooking(r, handler.Booking, g)
	wireDraft(r, handler.Draft, g)

	r.Get("/health", handler.Health.Health)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseError(w, http.StatusNotFound, "Route not found", "NOT_FOUND", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED", nil)
	})

	return r
}
