package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/libhub/library-service/internal/errs"
	"github.com/libhub/library-service/internal/model"
	"github.com/libhub/library-service/pkg/validate"
	_ "github.com/libhub/library-service/swagger"
)

type Handler struct {
	authSvc   AuthService
	userSvc   UserService
	bookSvc   BookService
	borrowSvc BorrowService
	statsSvc  StatsService
	log       *zap.Logger
}

func New(authSvc AuthService, userSvc UserService, bookSvc BookService, borrowSvc BorrowService, statsSvc StatsService, log *zap.Logger) *Handler {
	return &Handler{
		authSvc:   authSvc,
		userSvc:   userSvc,
		bookSvc:   bookSvc,
		borrowSvc: borrowSvc,
		statsSvc:  statsSvc,
		log:       log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))
	e.Use(middleware.RequestLoggerWithConfig(requestLoggerConfig(h.log)))
	e.Use(middleware.RequestID())

	e.Validator = validate.NewCustomValidator()

	base := e.Group("", newRateLimiterMW(baseRPS))
	base.GET("/", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.POST("/signup", h.Signup)
	e.POST("/login", h.Login)
	e.GET("/totalusers", h.TotalUsers)

	api := e.Group("/api", newRateLimiterMW(apiRPS))

	api.GET("/category-counts", h.CategoryCounts)
	api.GET("/userdata", h.ListUsers, JwtAuthentication, RequireRole(model.RoleAdmin))

	api.GET("/books", h.ListBooks)
	api.GET("/books/count", h.CountBooks)

	api.PUT("/books/burrow/:bookId", h.Burrow, JwtAuthentication)
	api.PUT("/books/return/:id", h.Return, JwtAuthentication)
	api.GET("/books/burrowstatus/:userId", h.BurrowStatus, JwtAuthentication)

	api.GET("/burrowings", h.ListBurrowings, JwtAuthentication, RequireRole(model.RoleAdmin))
	api.GET("/burrowings/count", h.CountBurrowed)
	api.GET("/burrowings/overdue", h.CountOverdue)

	api.GET("/stats/overview", h.StatsOverview, JwtAuthentication, RequireRole(model.RoleAdmin))

	// keep the specific routes above the :id ones
	api.POST("/books", h.CreateBook, JwtAuthentication, RequireRole(model.RoleAdmin))
	api.GET("/books/:id", h.GetBook)
	api.PUT("/books/:id", h.UpdateBook, JwtAuthentication, RequireRole(model.RoleAdmin))
	api.DELETE("/books/:id", h.DeleteBook, JwtAuthentication, RequireRole(model.RoleAdmin))

	api.GET("/users/me", h.CurrentUser, JwtAuthentication)
	api.PUT("/users/:id", h.UpdateUser, JwtAuthentication)
	api.DELETE("/deleteusers/:id", h.DeleteUser, JwtAuthentication, RequireRole(model.RoleAdmin))

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "GOOD HEALTH")
}

// httpError maps the error taxonomy onto status codes: missing entities are
// 404, failed preconditions and conflicts are 400, the rest is 500.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, errs.ErrBookNotFound),
		errors.Is(err, errs.ErrUserNotFound),
		errors.Is(err, errs.ErrRecordNotFound),
		errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrBookUnavailable),
		errors.Is(err, errs.ErrAlreadyBorrowed),
		errors.Is(err, errs.ErrAlreadyReturned),
		errors.Is(err, errs.ErrDuplicateEmail),
		errors.Is(err, errs.ErrDuplicateISBN),
		errors.Is(err, errs.ErrBadCredentials),
		errors.Is(err, errs.ErrPasswordCheck):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
