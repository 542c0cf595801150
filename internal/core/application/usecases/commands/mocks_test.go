package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/rider"
	"backoffice/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var (
	fixedNow    = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	fixedClock  = commands.Clock(func() time.Time { return fixedNow })
	discardLogs = slog.New(slog.NewTextHandler(io.Discard, nil))
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order, expected order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountActiveByRider(ctx context.Context, riderID kernel.UUID) (int, error) {
	args := m.Called(ctx, riderID)
	return args.Int(0), args.Error(1)
}

type MockRiderRepository struct{ mock.Mock }

func (m *MockRiderRepository) Add(ctx context.Context, r *rider.Rider) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRiderRepository) Update(ctx context.Context, r *rider.Rider) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rider.Rider), args.Error(1)
}

func (m *MockRiderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rider.Rider), args.Error(1)
}

func (m *MockRiderRepository) ListIDsByStatus(ctx context.Context, statuses ...rider.Status) ([]kernel.UUID, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) RiderRepository() ports.RiderRepository {
	args := m.Called()
	return args.Get(0).(ports.RiderRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event ports.ChangeEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// eventOfType matches a ChangeEvent by type, for expectations that do not care
// about the rest of the payload.
func eventOfType(t ports.EventType) any {
	return mock.MatchedBy(func(e ports.ChangeEvent) bool { return e.Type == t })
}

func pendingOrder(id kernel.UUID) *order.Order {
	o, err := order.NewOrder(id, "ORD-1001", order.Customer{Name: "Lucía"}, nil, 4590, false, "", fixedNow.Add(-time.Hour))
	if err != nil {
		panic(err)
	}
	return o
}

func restoredRider(id kernel.UUID, status rider.Status, active bool) *rider.Rider {
	r, err := rider.RestoreRider(rider.Snapshot{
		ID:     id,
		Name:   "Rider " + id.String()[:4],
		Status: status,
		Active: active,
	})
	if err != nil {
		panic(err)
	}
	return r
}

func assignedOrder(id, riderID kernel.UUID, status order.Status) *order.Order {
	at := fixedNow.Add(-30 * time.Minute)
	s := order.Snapshot{
		ID:         id,
		Number:     "ORD-1002",
		Status:     status,
		Customer:   order.Customer{Name: "Mateo"},
		RiderID:    &riderID,
		TotalCents: 1200,
		CreatedAt:  fixedNow.Add(-time.Hour),
		AssignedAt: &at,
	}
	if status == order.Delivered {
		s.DeliveredAt = &at
	}
	if status == order.Cancelled {
		s.CancelledAt = &at
	}
	o, err := order.RestoreOrder(s)
	if err != nil {
		panic(err)
	}
	return o
}
