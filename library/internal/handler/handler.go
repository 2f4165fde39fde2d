package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	md "github.com/Astemirdum/library-ledger/pkg/middleware"
	"github.com/Astemirdum/library-ledger/pkg/validate"
	_ "github.com/Astemirdum/library-ledger/swagger"
)

type Handler struct {
	catalog CatalogService
	ledger  LedgerService
	users   AuthService
	tokens  md.TokenParser
	log     *zap.Logger
}

func New(catalog CatalogService, ledger LedgerService, users AuthService, tokens md.TokenParser, log *zap.Logger) *Handler {
	return &Handler{
		catalog: catalog,
		ledger:  ledger,
		users:   users,
		tokens:  tokens,
		log:     log.Named("handler"),
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.HideBanner = true
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))
	e.Use(
		middleware.RequestID(),
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
	)
	e.Validator = validate.NewCustomValidator()

	base := e.Group("/manage", md.NewRateLimiter(baseRPS))
	base.GET("/health", h.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler, md.NewRateLimiter(baseRPS))

	authGroup := e.Group("/auth", md.NewRateLimiter(baseRPS))
	authGroup.POST("/register", h.Register)
	authGroup.POST("/login", h.Login)

	protected := []echo.MiddlewareFunc{
		md.NewRateLimiter(apiRPS),
		md.JwtAuthentication(h.tokens),
	}

	books := e.Group("/books", protected...)
	books.POST("", h.CreateBook)
	books.GET("", h.ListBooks)
	books.GET("/:id", h.GetBook)
	books.PUT("/:id", h.UpdateBook)
	books.DELETE("/:id", h.DeleteBook)

	borrowings := e.Group("/borrowings", protected...)
	borrowings.POST("", h.CreateBorrowing)
	borrowings.GET("", h.ListBorrowings)
	borrowings.GET("/:id", h.GetBorrowing)
	borrowings.PUT("/:id/return", h.ReturnBook)
	borrowings.DELETE("/:id", h.DeleteBorrowing)

	return e
}

// Health godoc
// @Summary liveness probe
// @Tags manage
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /manage/health [get]
func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
