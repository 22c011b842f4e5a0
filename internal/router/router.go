package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"venicelocal/internal/auth"
	"venicelocal/internal/config"
	"venicelocal/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	businessHandler *handler.BusinessHandler,
	favoriteHandler *handler.FavoriteHandler,
	profileHandler *handler.ProfileHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes: authentication and browsing
	api.POST("/auth/signup", authHandler.SignUp)
	api.POST("/auth/signin", authHandler.SignIn)
	api.POST("/auth/guest", authHandler.Guest)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/businesses", businessHandler.List)
	api.GET("/businesses/:id", businessHandler.Get)

	// Secured routes (require JWT authentication; guests hold tokens
	// too, so role checks stay in the domain layer)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/me", profileHandler.Me)
	secured.PUT("/me/avatar", profileHandler.UpdateAvatar)
	secured.GET("/me/favorites", favoriteHandler.List)

	secured.POST("/businesses", businessHandler.Create)
	secured.PUT("/businesses/:id", businessHandler.Update)
	secured.POST("/businesses/:id/reviews", businessHandler.AddReview)
	secured.POST("/businesses/:id/favorite", favoriteHandler.Toggle)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
