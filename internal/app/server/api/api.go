// GET  /api/v1/health                          # Проверка живости (публичный)
// POST /api/v1/user/register                   # Регистрация (публичный)
// POST /api/v1/user/login                      # Логин (публичный, лимит)
// POST /api/v1/user/logout                     # Завершить сессию (auth)
// GET  /api/v1/user/me                         # Текущий пользователь (auth)
// POST /api/v1/calculations/preview            # Расчет без сохранения (публичный)
// POST /api/v1/calculations                    # Сохранить расчет (auth)
// GET  /api/v1/calculations                    # Список расчетов (auth)
// GET  /api/v1/share/{link}                    # Расчет по ссылке (публичный, лимит)
// GET  /api/v1/share/{link}/schedule.csv       # Выгрузка графика (публичный, лимит)

package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/exp/slog"

	"loancalc/internal/app/server/api/http/calculation"
	healthAPI "loancalc/internal/app/server/api/http/health"
	"loancalc/internal/app/server/api/http/middleware"
	"loancalc/internal/app/server/api/http/middleware/auth"
	"loancalc/internal/app/server/api/http/middleware/logger"
	"loancalc/internal/app/server/api/http/middleware/ratelimit"
	shareAPI "loancalc/internal/app/server/api/http/share"
	userAPI "loancalc/internal/app/server/api/http/user"
	"loancalc/internal/app/server/config"
	calcDomain "loancalc/internal/domain/calculation"
	"loancalc/internal/domain/session"
	"loancalc/internal/domain/user"
	"loancalc/internal/infrastructure/storage"
)

type Handlers struct {
	Health      *healthAPI.Handler
	User        *userAPI.Handler
	Calculation *calculation.Handler
	Share       *shareAPI.Handler
}

// New создает *chi.Mux с ВСЕМИ операциями через huma.Register
func New(cfg *config.Config, store *storage.Store, calcOpts []calcDomain.Option, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()
	// без доверенного прокси лимитер работает по адресу соединения
	if cfg.Server.TrustProxy {
		mux.Use(chimw.RealIP)
	}
	mux.Use(chimw.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Location", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	humaConfig := huma.DefaultConfig("Loan Calculator API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, humaConfig)

	h := handlers(cfg, store, calcOpts, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Calculation.SetupRoutes(API)
	h.Share.SetupRoutes(API)

	return mux
}

func handlers(cfg *config.Config, store *storage.Store, calcOpts []calcDomain.Option, log *slog.Logger) *Handlers {
	sessionService := session.NewService(store.Sessions, cfg.Session.TTL, log)
	authMW := auth.New(sessionService, log)
	loggerMW := logger.New(log)
	limiter := ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	userService := user.NewService(store.Users, user.NewValidator(), log)
	userPublic := middlewares.Add(loggerMW.Middleware()).GetAllAndClear()
	userLimited := middlewares.Add(loggerMW.Middleware()).Add(limiter.Middleware()).GetAllAndClear()
	userPrivate := middlewares.Add(loggerMW.Middleware()).Add(authMW.Middleware()).GetAllAndClear()
	userHandler := userAPI.NewHandler(userService, sessionService, cfg.Session.TTL, log, userPublic, userLimited, userPrivate)

	calcService := calcDomain.NewService(store.Calculations, log, calcOpts...)
	calcPublic := middlewares.Add(loggerMW.Middleware()).GetAllAndClear()
	calcPrivate := middlewares.Add(loggerMW.Middleware()).Add(authMW.Middleware()).GetAllAndClear()
	calcHandler := calculation.NewHandler(calcService, log, calcPublic, calcPrivate)

	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(limiter.Middleware())
	shareHandler := shareAPI.NewHandler(calcService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health:      healthHandler,
		User:        userHandler,
		Calculation: calcHandler,
		Share:       shareHandler,
	}
}
