package http_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	api "backoffice/internal/adapters/in/http"
	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/role"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
)

type MockAssignOrderHandler struct{ mock.Mock }

func (m *MockAssignOrderHandler) Handle(ctx context.Context, command commands.AssignOrderCommand) error {
	return m.Called(ctx, command).Error(0)
}

type MockCancelOrderHandler struct{ mock.Mock }

func (m *MockCancelOrderHandler) Handle(ctx context.Context, command commands.CancelOrderCommand) error {
	return m.Called(ctx, command).Error(0)
}

type MockListOrdersHandler struct{ mock.Mock }

func (m *MockListOrdersHandler) Handle(
	ctx context.Context,
	query queries.ListOrdersQuery,
) (queries.ListOrdersQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.ListOrdersQueryResponse), args.Error(1)
}

type MockListRidersHandler struct{ mock.Mock }

func (m *MockListRidersHandler) Handle(ctx context.Context, query queries.ListRidersQuery) ([]queries.RiderView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.RiderView), args.Error(1)
}

type MockListAvailableRidersHandler struct{ mock.Mock }

func (m *MockListAvailableRidersHandler) Handle(
	ctx context.Context,
	query queries.ListAvailableRidersQuery,
) ([]queries.RiderView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.RiderView), args.Error(1)
}

type MockDashboardMetricsHandler struct{ mock.Mock }

func (m *MockDashboardMetricsHandler) Handle(
	ctx context.Context,
	query queries.GetDashboardMetricsQuery,
) (queries.DashboardMetrics, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.DashboardMetrics), args.Error(1)
}

type MockProfileHandler struct{ mock.Mock }

func (m *MockProfileHandler) Handle(ctx context.Context, query queries.GetProfileQuery) (queries.ProfileView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.ProfileView), args.Error(1)
}

var fixedNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

type testServer struct {
	echo      *echo.Echo
	assign    *MockAssignOrderHandler
	cancel    *MockCancelOrderHandler
	orders    *MockListOrdersHandler
	riders    *MockListRidersHandler
	available *MockListAvailableRidersHandler
	metrics   *MockDashboardMetricsHandler
	profiles  *MockProfileHandler
}

func newTestServer() *testServer {
	ts := &testServer{
		assign:    &MockAssignOrderHandler{},
		cancel:    &MockCancelOrderHandler{},
		orders:    &MockListOrdersHandler{},
		riders:    &MockListRidersHandler{},
		available: &MockListAvailableRidersHandler{},
		metrics:   &MockDashboardMetricsHandler{},
		profiles:  &MockProfileHandler{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts.echo = api.NewEcho(logger, false)
	server := api.NewServer(api.Handlers{
		AssignOrder:         ts.assign,
		CancelOrder:         ts.cancel,
		ListOrders:          ts.orders,
		ListRiders:          ts.riders,
		ListAvailableRiders: ts.available,
		DashboardMetrics:    ts.metrics,
		Profile:             ts.profiles,
	}, func() time.Time { return fixedNow }, logger)
	if err := server.Register(context.Background(), ts.echo); err != nil {
		panic(err)
	}
	return ts
}

// signIn makes the profile handler resolve a new identity with the given role.
func (ts *testServer) signIn(r role.Role) kernel.UUID {
	id := kernel.NewUUID()
	ts.profiles.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetProfileQuery) bool {
		return q.ID().IsEqual(id)
	})).Return(queries.ProfileView{
		ID:          id,
		Role:        r,
		FullName:    "Staff",
		Email:       "staff@example.com",
		IsAdmin:     r == role.Admin,
		IsSubAdmin:  r == role.SubAdmin,
		IsSoporte:   r == role.Soporte,
		CanDispatch: role.HasPermission(r, role.SubAdmin),
	}, nil)
	return id
}

func (ts *testServer) do(t *testing.T, method, target, body string, caller *kernel.UUID) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequestWithContext(t.Context(), method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if caller != nil {
		req.Header.Set(api.UserIDHeader, caller.String())
	}
	rec := httptest.NewRecorder()
	ts.echo.ServeHTTP(rec, req)
	return rec
}

