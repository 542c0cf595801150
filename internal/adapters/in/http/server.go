// Package http is the back-office REST adapter. Every /api/v1 route requires an
// authenticated caller; assign and cancel answer with the {success, error} outcome.
package http

import (
	"context"
	"log/slog"
	"errors"
	"net/http"
	"strings"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/rider"
	"backoffice/internal/core/domain/model/role"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type (
	AssignOrderHandler interface {
		Handle(ctx context.Context, command commands.AssignOrderCommand) error
	}
	CancelOrderHandler interface {
		Handle(ctx context.Context, command commands.CancelOrderCommand) error
	}
	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.ListOrdersQueryResponse, error)
	}
	ListRidersHandler interface {
		Handle(ctx context.Context, query queries.ListRidersQuery) ([]queries.RiderView, error)
	}
	ListAvailableRidersHandler interface {
		Handle(ctx context.Context, query queries.ListAvailableRidersQuery) ([]queries.RiderView, error)
	}
	DashboardMetricsHandler interface {
		Handle(ctx context.Context, query queries.GetDashboardMetricsQuery) (queries.DashboardMetrics, error)
	}
)

// Handlers groups the use cases the server exposes.
type Handlers struct {
	AssignOrder         AssignOrderHandler
	CancelOrder         CancelOrderHandler
	ListOrders          ListOrdersHandler
	ListRiders          ListRidersHandler
	ListAvailableRiders ListAvailableRidersHandler
	DashboardMetrics    DashboardMetricsHandler
	Profile             ProfileQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	clock    commands.Clock
	logger   *slog.Logger
}

// NewServer creates a server over handlers. clock decides what "today" is for the
// dashboard metrics.
func NewServer(handlers Handlers, clock commands.Clock, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		clock:    clock,
		logger:   logger.With("component", "http"),
	}
}

// Register mounts the routes on e. Every /api/v1 request is checked against the
// embedded OpenAPI document after authentication; the same document is browsable
// under /swagger/index.html.
func (s *Server) Register(ctx context.Context, e *echo.Echo) error {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return err
	}
	validate, err := ValidateRequests(doc)
	if err != nil {
		return err
	}
	if err = registerSwaggerDoc(doc); err != nil {
		return err
	}

	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", Authenticate(s.handlers.Profile), validate)
	api.GET("/me", s.GetMe)

	staff := RequireRole(role.Soporte)
	api.GET("/orders", s.ListOrders, staff)
	api.GET("/riders", s.ListRiders, staff)
	api.GET("/riders/available", s.ListAvailableRiders, staff)
	api.GET("/metrics", s.GetMetrics, staff)

	api.POST("/orders/:id/assign", s.AssignOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	return nil
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// GetMe handles GET /api/v1/me - the caller's profile and permission flags.
func (s *Server) GetMe(c echo.Context) error {
	caller, ok := callerOf(c)
	if !ok {
		return unauthorized(c)
	}
	return c.JSON(http.StatusOK, profileResponseOf(caller))
}

// ListOrders handles GET /api/v1/orders.
//
// Query parameters: status (comma separated), rider_id, urgent, q, page, page_size.
func (s *Server) ListOrders(c echo.Context) error {
	var filter queries.OrderFilter

	names, err := queryList(c.QueryParams(), "status")
	if err != nil {
		return badRequest(c, "invalid status")
	}
	for _, name := range names {
		status, parseErr := order.ParseStatus(strings.TrimSpace(name))
		if parseErr != nil {
			return badRequest(c, "invalid status: "+name)
		}
		filter.Statuses = append(filter.Statuses, status)
	}
	if raw := c.QueryParam("rider_id"); raw != "" {
		riderID, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return badRequest(c, "invalid rider_id")
		}
		filter.RiderID = &riderID
	}
	filter.Search = c.QueryParam("q")

	var page, pageSize int
	err = echo.QueryParamsBinder(c).
		Bool("urgent", &filter.UrgentOnly).
		Int("page", &page).
		Int("page_size", &pageSize).
		BindError()
	if err != nil {
		return badRequest(c, bindingMessage(err))
	}

	query, err := queries.NewListOrdersQuery(filter, page, pageSize)
	if err != nil {
		return s.fail(c, err, "Failed to retrieve orders")
	}

	result, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err, "Failed to retrieve orders")
	}

	response := OrdersPageResponse{
		Orders:   make([]OrderResponse, len(result.Orders)),
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	}
	for i, o := range result.Orders {
		response.Orders[i] = orderResponseOf(o)
	}
	return c.JSON(http.StatusOK, response)
}

// ListRiders handles GET /api/v1/riders. Query parameters: status, active.
func (s *Server) ListRiders(c echo.Context) error {
	var status *rider.Status
	if raw := c.QueryParam("status"); raw != "" {
		parsed, err := rider.ParseStatus(raw)
		if err != nil {
			return badRequest(c, "invalid status: "+raw)
		}
		status = &parsed
	}
	var activeOnly bool
	if err := echo.QueryParamsBinder(c).Bool("active", &activeOnly).BindError(); err != nil {
		return badRequest(c, bindingMessage(err))
	}

	query, err := queries.NewListRidersQuery(status, activeOnly)
	if err != nil {
		return s.fail(c, err, "Failed to retrieve riders")
	}

	riders, err := s.handlers.ListRiders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err, "Failed to retrieve riders")
	}
	return c.JSON(http.StatusOK, ridersResponseOf(riders))
}

// ListAvailableRiders handles GET /api/v1/riders/available - assignable riders,
// least loaded first.
func (s *Server) ListAvailableRiders(c echo.Context) error {
	riders, err := s.handlers.ListAvailableRiders.Handle(c.Request().Context(), queries.NewListAvailableRidersQuery())
	if err != nil {
		return s.fail(c, err, "Failed to retrieve available riders")
	}
	return c.JSON(http.StatusOK, ridersResponseOf(riders))
}

// GetMetrics handles GET /api/v1/metrics.
func (s *Server) GetMetrics(c echo.Context) error {
	query, err := queries.NewGetDashboardMetricsQuery(s.clock())
	if err != nil {
		return s.fail(c, err, "Failed to retrieve metrics")
	}

	metrics, err := s.handlers.DashboardMetrics.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err, "Failed to retrieve metrics")
	}
	return c.JSON(http.StatusOK, metricsResponseOf(metrics))
}

// AssignOrder handles POST /api/v1/orders/:id/assign.
//
// Workflow failures are answered with 200 and {success: false, error}; only a
// caller below sub-admin gets 403, with the same body shape.
func (s *Server) AssignOrder(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid order id")
	}
	var req AssignRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	riderID, err := kernel.UUIDFromString(req.RiderID)
	if err != nil {
		return badRequest(c, "invalid rider_id")
	}

	cmd, err := commands.NewAssignOrderCommand(orderID, riderID, callerRole(c))
	if err != nil {
		return s.outcome(c, err, commands.MsgAssignFailed)
	}
	return s.outcome(c, s.handlers.AssignOrder.Handle(c.Request().Context(), cmd), commands.MsgAssignFailed)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel. The body is optional.
func (s *Server) CancelOrder(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid order id")
	}
	var req CancelRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, callerRole(c), req.Reason)
	if err != nil {
		return s.outcome(c, err, commands.MsgCancelFailed)
	}
	return s.outcome(c, s.handlers.CancelOrder.Handle(c.Request().Context(), cmd), commands.MsgCancelFailed)
}

func (s *Server) outcome(c echo.Context, err error, fallback string) error {
	result := commands.OutcomeOf(err, fallback)
	if result.Error == commands.MsgUnauthorized {
		return c.JSON(http.StatusForbidden, result)
	}
	if err != nil && result.Error == fallback {
		s.logger.ErrorContext(c.Request().Context(), fallback,
			"order_id", c.Param("id"),
			"error", err,
		)
	}
	return c.JSON(http.StatusOK, result)
}

func bindingMessage(err error) string {
	var bindErr *echo.BindingError
	if errors.As(err, &bindErr) {
		return "invalid " + bindErr.Field
	}
	return "Invalid request"
}
