package commands_test

import (
	"context"
	"errors"
	"testing"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/rider"
	"backoffice/internal/core/domain/model/role"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type assignFixture struct {
	orderID, riderID kernel.UUID
	orderRepo        *MockOrderRepository
	riderRepo        *MockRiderRepository
	uow              *MockUoW
	factory          *MockUoWFactory
	publisher        *MockEventPublisher
	handler          commands.AssignOrderCommandHandler
	cmd              commands.AssignOrderCommand
}

func newAssignFixture(t *testing.T) *assignFixture {
	t.Helper()
	f := &assignFixture{
		orderID:   kernel.NewUUID(),
		riderID:   kernel.NewUUID(),
		orderRepo: new(MockOrderRepository),
		riderRepo: new(MockRiderRepository),
		uow:       new(MockUoW),
		factory:   new(MockUoWFactory),
		publisher: new(MockEventPublisher),
	}

	recompute := commands.NewRecomputeRiderAvailabilityCommandHandler(f.factory, f.publisher, fixedClock, discardLogs)
	f.handler = commands.NewAssignOrderCommandHandler(f.factory, recompute, f.publisher, fixedClock, discardLogs)

	cmd, err := commands.NewAssignOrderCommand(f.orderID, f.riderID, role.SubAdmin)
	require.NoError(t, err)
	f.cmd = cmd
	return f
}

// expectOpen registers the opening of the assign transaction.
func (f *assignFixture) expectOpen(ctx context.Context) {
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("RiderRepository").Return(f.riderRepo).Once()
	f.uow.On("OrderRepository").Return(f.orderRepo).Once()
}

func (f *assignFixture) assertExpectations(t *testing.T) {
	f.orderRepo.AssertExpectations(t)
	f.riderRepo.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.factory.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestAssignOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture(t)

	testOrder := pendingOrder(f.orderID)
	testRider := restoredRider(f.riderID, rider.Available, true)
	lockedRider := restoredRider(f.riderID, rider.Available, true)

	recomputeUoW := new(MockUoW)

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("RiderRepository").Return(f.riderRepo).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.riderRepo.On("Get", ctx, f.riderID).Return(testRider, nil).Once(),
		f.orderRepo.On("Get", ctx, f.orderID).Return(testOrder, nil).Once(),
		f.orderRepo.On("Update", ctx, testOrder, order.Pending).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.publisher.On("Publish", ctx, mock.MatchedBy(func(e ports.ChangeEvent) bool {
			return e.Type == ports.EventOrderAssigned &&
				e.OrderID != nil && e.OrderID.IsEqual(f.orderID) &&
				e.RiderID != nil && e.RiderID.IsEqual(f.riderID) &&
				e.Status == "assigned" &&
				e.OccurredAt.Equal(fixedNow)
		})).Return(nil).Once(),

		f.factory.On("Create").Return(recomputeUoW).Once(),
		recomputeUoW.On("Begin", ctx).Return(nil).Once(),
		recomputeUoW.On("RiderRepository").Return(f.riderRepo).Once(),
		recomputeUoW.On("OrderRepository").Return(f.orderRepo).Once(),
		f.riderRepo.On("GetForUpdate", ctx, f.riderID).Return(lockedRider, nil).Once(),
		f.orderRepo.On("CountActiveByRider", ctx, f.riderID).Return(1, nil).Once(),
		f.riderRepo.On("Update", ctx, lockedRider).Return(nil).Once(),
		recomputeUoW.On("Commit", ctx).Return(nil).Once(),
		f.publisher.On("Publish", ctx, eventOfType(ports.EventRiderStatusChanged)).Return(nil).Once(),
		recomputeUoW.On("Rollback", ctx).Return(nil).Once(),

		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	err := f.handler.Handle(ctx, f.cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Assigned, testOrder.Status())
	assert.True(t, f.riderID.IsEqual(*testOrder.Rider()))
	assert.Equal(t, fixedNow, *testOrder.AssignedAt())
	assert.Equal(t, rider.Busy, lockedRider.Status())
	f.assertExpectations(t)
	recomputeUoW.AssertExpectations(t)
}

func TestAssignOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	f := newAssignFixture(t)

	err := f.handler.Handle(t.Context(), commands.AssignOrderCommand{})

	require.ErrorIs(t, err, commands.ErrAssignOrderCommandIsNotConstructed)
	f.factory.AssertNotCalled(t, "Create")
}

func TestAssignOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture(t)

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	err := f.handler.Handle(ctx, f.cmd)

	require.EqualError(t, err, "begin error")
	f.assertExpectations(t)
}

func TestAssignOrderCommandHandler_Handle_RiderNotFound(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture(t)
	f.expectOpen(ctx)

	f.riderRepo.On("Get", ctx, f.riderID).Return(nil, errs.NewObjectNotFoundError("rider", f.riderID.String())).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	err := f.handler.Handle(ctx, f.cmd)

	require.ErrorIs(t, err, commands.ErrRiderNotFound)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	f.orderRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestAssignOrderCommandHandler_Handle_RiderNotAssignable(t *testing.T) {
	tests := []struct {
		name    string
		status  rider.Status
		active  bool
		wantErr error
	}{
		{"inactive and available", rider.Available, false, rider.ErrRiderInactive},
		{"inactive and busy", rider.Busy, false, rider.ErrRiderInactive},
		{"inactive and offline", rider.Offline, false, rider.ErrRiderInactive},
		{"busy", rider.Busy, true, rider.ErrRiderUnavailable},
		{"offline", rider.Offline, true, rider.ErrRiderUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			f := newAssignFixture(t)
			f.expectOpen(ctx)

			f.riderRepo.On("Get", ctx, f.riderID).Return(restoredRider(f.riderID, tt.status, tt.active), nil).Once()
			f.orderRepo.On("Get", ctx, f.orderID).Return(pendingOrder(f.orderID), nil).Once()
			f.uow.On("Rollback", ctx).Return(nil).Once()

			err := f.handler.Handle(ctx, f.cmd)

			require.ErrorIs(t, err, tt.wantErr)
			require.ErrorIs(t, err, errs.ErrPreconditionFailed)
			f.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
			f.assertExpectations(t)
		})
	}
}

func TestAssignOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture(t)
	f.expectOpen(ctx)

	f.riderRepo.On("Get", ctx, f.riderID).Return(restoredRider(f.riderID, rider.Available, true), nil).Once()
	f.orderRepo.On("Get", ctx, f.orderID).Return(nil, errs.NewObjectNotFoundError("order", f.orderID.String())).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	err := f.handler.Handle(ctx, f.cmd)

	require.ErrorIs(t, err, commands.ErrOrderNotFound)
	assert.NotErrorIs(t, err, commands.ErrRiderNotFound)
	f.assertExpectations(t)
}

func TestAssignOrderCommandHandler_Handle_OrderNotPending(t *testing.T) {
	for _, status := range []order.Status{order.Assigned, order.InTransit, order.Delivered, order.Cancelled} {
		t.Run(status.String(), func(t *testing.T) {
			ctx := t.Context()
			f := newAssignFixture(t)
			f.expectOpen(ctx)

			taken := assignedOrder(f.orderID, kernel.NewUUID(), status)
			f.riderRepo.On("Get", ctx, f.riderID).Return(restoredRider(f.riderID, rider.Available, true), nil).Once()
			f.orderRepo.On("Get", ctx, f.orderID).Return(taken, nil).Once()
			f.uow.On("Rollback", ctx).Return(nil).Once()

			err := f.handler.Handle(ctx, f.cmd)

			require.ErrorIs(t, err, order.ErrOrderNotPending)
			require.ErrorIs(t, err, errs.ErrPreconditionFailed)
			f.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
			f.assertExpectations(t)
		})
	}
}

func TestAssignOrderCommandHandler_Handle_RepeatedAssignToSameRider(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture(t)
	f.expectOpen(ctx)

	f.riderRepo.On("Get", ctx, f.riderID).Return(restoredRider(f.riderID, rider.Busy, true), nil).Once()
	f.orderRepo.On("Get", ctx, f.orderID).Return(assignedOrder(f.orderID, f.riderID, order.Assigned), nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	err := f.handler.Handle(ctx, f.cmd)

	require.ErrorIs(t, err, order.ErrOrderNotPending)
	assert.NotErrorIs(t, err, rider.ErrRiderUnavailable)
	assert.Equal(t,
		commands.Outcome{Error: "Pedido ya fue asignado o completado"},
		commands.OutcomeOf(err, commands.MsgAssignFailed),
	)
	f.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestAssignOrderCommandHandler_Handle_LostRace(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture(t)
	f.expectOpen(ctx)

	testOrder := pendingOrder(f.orderID)
	f.riderRepo.On("Get", ctx, f.riderID).Return(restoredRider(f.riderID, rider.Available, true), nil).Once()
	f.orderRepo.On("Get", ctx, f.orderID).Return(testOrder, nil).Once()
	f.orderRepo.On("Update", ctx, testOrder, order.Pending).
		Return(errs.NewPreconditionFailedErrorWithCause("order", "status is no longer pending", ports.ErrOrderStatusMismatch)).
		Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	err := f.handler.Handle(ctx, f.cmd)

	require.ErrorIs(t, err, order.ErrOrderNotPending)
	assert.Equal(t, commands.MsgOrderNotPending, commands.OutcomeOf(err, commands.MsgAssignFailed).Error)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestAssignOrderCommandHandler_Handle_TransientUpdateFailure(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture(t)
	f.expectOpen(ctx)

	testOrder := pendingOrder(f.orderID)
	f.riderRepo.On("Get", ctx, f.riderID).Return(restoredRider(f.riderID, rider.Available, true), nil).Once()
	f.orderRepo.On("Get", ctx, f.orderID).Return(testOrder, nil).Once()
	f.orderRepo.On("Update", ctx, testOrder, order.Pending).
		Return(errs.NewTransientIOError("update order", errors.New("connection reset"))).
		Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	err := f.handler.Handle(ctx, f.cmd)

	require.ErrorIs(t, err, errs.ErrTransientIO)
	assert.Equal(t, commands.Outcome{Error: commands.MsgAssignFailed}, commands.OutcomeOf(err, commands.MsgAssignFailed))
	f.assertExpectations(t)
}

func TestAssignOrderCommandHandler_Handle_RiderWriteFailureKeepsAssignment(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture(t)
	f.expectOpen(ctx)

	testOrder := pendingOrder(f.orderID)
	recomputeUoW := new(MockUoW)

	f.riderRepo.On("Get", ctx, f.riderID).Return(restoredRider(f.riderID, rider.Available, true), nil).Once()
	f.orderRepo.On("Get", ctx, f.orderID).Return(testOrder, nil).Once()
	f.orderRepo.On("Update", ctx, testOrder, order.Pending).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.publisher.On("Publish", ctx, eventOfType(ports.EventOrderAssigned)).Return(errors.New("broker down")).Once()

	f.factory.On("Create").Return(recomputeUoW).Once()
	recomputeUoW.On("Begin", ctx).Return(errs.NewTransientIOError("begin", errors.New("connection refused"))).Once()

	err := f.handler.Handle(ctx, f.cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Assigned, testOrder.Status())
	f.assertExpectations(t)
	recomputeUoW.AssertExpectations(t)
}
