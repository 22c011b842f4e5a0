package main

import (
	"context"
	"net/http"
	"os"

	_ "venicelocal/docs" // swagger docs

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"venicelocal/internal/auth"
	"venicelocal/internal/cache"
	"venicelocal/internal/catalog"
	"venicelocal/internal/config"
	"venicelocal/internal/db"
	"venicelocal/internal/handler"
	"venicelocal/internal/router"
	"venicelocal/internal/service"
	"venicelocal/internal/store"
)

// @title Venice Local API
// @version 1.0
// @description Local-business directory: browse, filter and sort listings, leave reviews, save favorites, and manage owner listings.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	_ = godotenv.Load()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg := config.Load()
	ctx := context.Background()

	gormDB, err := db.NewSQLite(cfg.SQLitePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("database init")
	}

	st, err := store.New(gormDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("store init")
	}

	// One-time sample catalog; the seeded flag makes this a no-op on
	// every later start.
	seeded, err := st.SeedIfNeeded(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("seed")
	}
	if seeded {
		logger.Info().Msg("seeded sample businesses")
	}

	users, err := st.LoadUsers(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("load users")
	}
	businesses, err := st.LoadBusinesses(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("load businesses")
	}
	favorites, err := st.LoadFavorites(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("load favorites")
	}
	cat := catalog.New(users, businesses, favorites)
	logger.Info().
		Int("users", len(users)).
		Int("businesses", len(businesses)).
		Msg("catalog loaded")

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(cat, st, jwtService, tokenStore)
	catalogService := service.NewCatalogService(cat, st, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	businessHandler := handler.NewBusinessHandler(catalogService)
	favoriteHandler := handler.NewFavoriteHandler(catalogService)
	profileHandler := handler.NewProfileHandler(authService)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())

	router.Register(
		e,
		cfg,
		authHandler,
		businessHandler,
		favoriteHandler,
		profileHandler,
	)

	addr := ":" + cfg.ServerPort
	logger.Info().Str("addr", addr).Msg("starting server")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server start")
	}
}
