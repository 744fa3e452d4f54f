package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"toystore-api/internal/apperr"
	"toystore-api/internal/handler"
	"toystore-api/internal/middleware"
	"toystore-api/internal/service"
)

type Server struct {
	echo           *echo.Echo
	orderHandler   *handler.OrderHandler
	paymentHandler *handler.PaymentHandler
	productHandler *handler.ProductHandler
}

func NewServer(
	orderService service.OrderService,
	paymentService service.PaymentService,
	productService service.ProductService,
	logger *logrus.Logger,
	development bool,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apperr.HTTPErrorHandler(logger, development)

	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logger.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"request_id": v.RequestID,
			}).Info("request")
			return nil
		},
	}))

	s := &Server{
		echo:           e,
		orderHandler:   handler.NewOrderHandler(orderService),
		paymentHandler: handler.NewPaymentHandler(paymentService),
		productHandler: handler.NewProductHandler(productService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api", middleware.RequesterID())

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// -------- catalog --------
	api.GET("/products", s.productHandler.ListProducts)
	api.GET("/products/:id", s.productHandler.GetProduct)
	api.PUT("/products/:id/stock", s.productHandler.UpdateStock)

	// -------- orders --------
	api.POST("/orders", s.orderHandler.CreateOrder)
	api.GET("/orders", s.orderHandler.ListOrders)
	api.GET("/orders/user/:userId", s.orderHandler.ListUserOrders)
	api.GET("/orders/:orderId", s.orderHandler.GetOrder)
	api.PUT("/orders/:orderId/accept", s.orderHandler.AcceptOrder)
	api.PUT("/orders/:orderId/cancel", s.orderHandler.CancelOrder)
	api.PUT("/orders/:orderId/address", s.orderHandler.UpdateAddress)
	api.GET("/orders/:orderId/items/:itemId/tracking", s.orderHandler.ItemTracking)

	// -------- payments --------
	api.POST("/payments/create-order", s.paymentHandler.CreateGatewayOrder)
	api.POST("/payments/verify", s.paymentHandler.VerifySignature)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}

// Echo exposes the underlying router for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
