package server

import (
	"context"
	"log/slog"
	"net/http"

	"gsinfo-directory/internal/auth"
	"gsinfo-directory/internal/handler"
	"gsinfo-directory/internal/listing"
	appmw "gsinfo-directory/internal/middleware"
	"gsinfo-directory/internal/model"
	"gsinfo-directory/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Services struct {
	Payment  service.PaymentService
	Claim    service.ClaimService
	Business service.BusinessService
	Review   service.ReviewService
	Inquiry  service.InquiryService
	User     service.UserService
	Admin    service.AdminService
}

type Server struct {
	echo            *echo.Echo
	verifier        auth.TokenVerifier
	roles           appmw.RoleChecker
	paymentHandler  *handler.PaymentHandler
	claimHandler    *handler.ClaimHandler
	listingHandler  *handler.ListingHandler
	businessHandler *handler.BusinessHandler
	userHandler     *handler.UserHandler
}

func NewServer(
	services Services,
	catalog *listing.Catalog,
	verifier auth.TokenVerifier,
	roles appmw.RoleChecker,
	logger *slog.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.ErrorHandler(logger)

	e.Use(middleware.RequestLoggerWithConfig(requestLoggerConfig(logger)))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{"authorization", "x-client-info", "apikey", "content-type"},
	}))

	s := &Server{
		echo:            e,
		verifier:        verifier,
		roles:           roles,
		paymentHandler:  handler.NewPaymentHandler(services.Payment),
		claimHandler:    handler.NewClaimHandler(services.Claim),
		listingHandler:  handler.NewListingHandler(catalog),
		businessHandler: handler.NewBusinessHandler(services.Business, services.Review, services.Inquiry),
		userHandler:     handler.NewUserHandler(services.User, services.Admin),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")
	authed := appmw.Authenticate(s.verifier)

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// -------- listings --------
	api.GET("/listings", s.listingHandler.Search)
	api.GET("/listings/cities", s.listingHandler.Cities)
	api.GET("/listings/:listingID", s.listingHandler.Get)

	// -------- businesses --------
	businesses := api.Group("/businesses")
	businesses.GET("/:id", s.businessHandler.Get)
	businesses.GET("/:id/reviews", s.businessHandler.Reviews)
	businesses.POST("/:id/reviews", s.businessHandler.SubmitReview, authed)
	businesses.POST("/:id/claims", s.claimHandler.Submit, authed)
	businesses.POST("/:id/inquiries", s.businessHandler.SubmitInquiry, appmw.OptionalAuthenticate(s.verifier))

	// -------- user --------
	api.GET("/profile", s.userHandler.GetProfile, authed)
	api.PUT("/profile", s.userHandler.UpdateProfile, authed)
	api.GET("/favorites", s.userHandler.Favorites, authed)
	api.POST("/favorites/:businessID", s.userHandler.AddFavorite, authed)
	api.DELETE("/favorites/:businessID", s.userHandler.RemoveFavorite, authed)

	// -------- payments --------
	payments := api.Group("/payments")
	payments.POST("/orders", s.paymentHandler.CreateOrder, authed)
	payments.GET("/orders", s.paymentHandler.ListOrders, authed)
	payments.GET("/orders/:orderID", s.paymentHandler.GetOrder, authed)
	payments.POST("/orders/:orderID/upi", s.paymentHandler.CreateUPILink, authed)
	payments.POST("/orders/:orderID/braintree", s.paymentHandler.BraintreeCheckout, authed)

	// -------- gateway webhooks --------
	payments.POST("/webhooks/cashfree", s.paymentHandler.CashfreeWebhook)
	payments.POST("/webhooks/midtrans", s.paymentHandler.MidtransNotification)

	// -------- admin --------
	admin := api.Group("/admin", authed, appmw.RequireRole(s.roles, model.RoleAdmin))
	admin.GET("/stats", s.userHandler.Stats)
	admin.GET("/businesses", s.businessHandler.AdminList)
	admin.POST("/businesses/import", s.businessHandler.Import)
	admin.PATCH("/businesses/:id/verified", s.businessHandler.SetVerified)
	admin.DELETE("/businesses/:id", s.businessHandler.Delete)
	admin.GET("/claims", s.claimHandler.List)
	admin.POST("/claims/decisions", s.claimHandler.Decide)
	admin.PATCH("/claims/:id", s.claimHandler.Decide)
	admin.GET("/reviews", s.businessHandler.AdminReviews)
	admin.PATCH("/reviews/:id", s.businessHandler.SetReviewStatus)
	admin.GET("/inquiries", s.businessHandler.AdminInquiries)
	admin.PATCH("/inquiries/:id", s.businessHandler.SetInquiryStatus)
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func requestLoggerConfig(logger *slog.Logger) middleware.RequestLoggerConfig {
	return middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				logger.LogAttrs(c.Request().Context(), slog.LevelWarn, "request", attrs...)
				return nil
			}
			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request", attrs...)
			return nil
		},
	}
}
