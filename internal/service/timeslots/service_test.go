package timeslots

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
	timeslotRepo "github.com/m04kA/SMC-CourtSlotService/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-CourtSlotService/internal/integrations/availabilityapi"
	"github.com/m04kA/SMC-CourtSlotService/internal/service/timeslots/models"
	"github.com/m04kA/SMC-CourtSlotService/pkg/logger"
	"github.com/m04kA/SMC-CourtSlotService/pkg/ptr"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) ListTimeSlots(ctx context.Context, courtID int64, date time.Time) ([]*domain.TimeSlot, error) {
	args := m.Called(ctx, courtID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TimeSlot), args.Error(1)
}

func (m *mockAPI) CreateTimeSlot(ctx context.Context, courtID int64, date time.Time, slot domain.NewTimeSlot) (*domain.TimeSlot, error) {
	args := m.Called(ctx, courtID, date, slot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeSlot), args.Error(1)
}

func (m *mockAPI) BookTimeSlot(ctx context.Context, courtID int64, date time.Time, userID int64, slot domain.NewTimeSlot) (*domain.TimeSlot, error) {
	args := m.Called(ctx, courtID, date, userID, slot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeSlot), args.Error(1)
}

func (m *mockAPI) UpdateTimeSlot(ctx context.Context, slotID int64, patch domain.TimeSlotPatch) (*domain.TimeSlot, error) {
	args := m.Called(ctx, slotID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeSlot), args.Error(1)
}

var testDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func TestService_List(t *testing.T) {
	ctx := context.Background()
	api := new(mockAPI)
	api.On("ListTimeSlots", ctx, int64(7), testDate).Return([]*domain.TimeSlot{
		{ID: 1, CourtID: 7, Date: testDate, StartTime: "09:00", EndTime: "10:00", IsActive: true, BookedBy: ptr.Ptr(int64(42))},
	}, nil)

	resp, err := NewService(api, logger.Nop()).List(ctx, 7, testDate)
	require.NoError(t, err)
	require.Len(t, resp.TimeSlots, 1)
	assert.Equal(t, "2024-06-01", resp.TimeSlots[0].Date)
	assert.Equal(t, "09:00", resp.TimeSlots[0].StartTime)
	assert.Equal(t, int64(42), *resp.TimeSlots[0].BookedBy)
	assert.Empty(t, resp.TimeSlots[0].CreatedAt)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		api := new(mockAPI)
		api.On("CreateTimeSlot", ctx, int64(7), testDate,
			domain.NewTimeSlot{StartTime: "14:00", EndTime: "15:00", Rate: ptr.Ptr(500.0)}).
			Return(&domain.TimeSlot{ID: 9, CourtID: 7, Date: testDate, StartTime: "14:00", EndTime: "15:00", Rate: ptr.Ptr(500.0)}, nil)

		resp, err := NewService(api, logger.Nop()).Create(ctx, 7, &models.CreateTimeSlotRequest{
			Date: "2024-06-01", StartTime: "14:00", EndTime: "15:00", Rate: ptr.Ptr(500.0),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(9), resp.ID)
	})

	t.Run("invalid input", func(t *testing.T) {
		svc := NewService(new(mockAPI), logger.Nop())

		for _, req := range []*models.CreateTimeSlotRequest{
			{Date: "01.06.2024", StartTime: "14:00", EndTime: "15:00"},
			{Date: "2024-06-01", StartTime: "2pm", EndTime: "15:00"},
			{Date: "2024-06-01", StartTime: "15:00", EndTime: "14:00"},
			{Date: "2024-06-01", StartTime: "14:00", EndTime: "15:00", Rate: ptr.Ptr(-5.0)},
		} {
			_, err := svc.Create(ctx, 7, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		}
	})

	t.Run("conflict from local store", func(t *testing.T) {
		api := new(mockAPI)
		api.On("CreateTimeSlot", ctx, int64(7), testDate, mock.Anything).
			Return(nil, fmt.Errorf("%w: duplicate", timeslotRepo.ErrSlotConflict))

		_, err := NewService(api, logger.Nop()).Create(ctx, 7, &models.CreateTimeSlotRequest{
			Date: "2024-06-01", StartTime: "14:00", EndTime: "15:00",
		})
		assert.ErrorIs(t, err, ErrSlotConflict)
	})
}

func TestService_Book(t *testing.T) {
	ctx := context.Background()
	req := func(userID int64) *models.BookTimeSlotRequest {
		return &models.BookTimeSlotRequest{UserID: userID, Date: "2024-06-01", StartTime: "10:00", EndTime: "11:00"}
	}

	t.Run("books for caller by default", func(t *testing.T) {
		api := new(mockAPI)
		api.On("BookTimeSlot", ctx, int64(7), testDate, int64(42), mock.Anything).
			Return(&domain.TimeSlot{ID: 3, IsActive: true, BookedBy: ptr.Ptr(int64(42))}, nil)

		resp, err := NewService(api, logger.Nop()).Book(ctx, 7, 42, domain.RoleUser, req(0))
		require.NoError(t, err)
		assert.True(t, resp.IsActive)
	})

	t.Run("admin books for another user", func(t *testing.T) {
		api := new(mockAPI)
		api.On("BookTimeSlot", ctx, int64(7), testDate, int64(42), mock.Anything).
			Return(&domain.TimeSlot{ID: 3}, nil)

		_, err := NewService(api, logger.Nop()).Book(ctx, 7, 1, domain.RoleAdmin, req(42))
		require.NoError(t, err)
	})

	t.Run("user cannot book for another user", func(t *testing.T) {
		api := new(mockAPI)

		_, err := NewService(api, logger.Nop()).Book(ctx, 7, 1, domain.RoleUser, req(42))
		assert.ErrorIs(t, err, ErrAccessDenied)
		api.AssertNotCalled(t, "BookTimeSlot", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("user cannot set rate", func(t *testing.T) {
		api := new(mockAPI)
		r := req(0)
		r.Rate = ptr.Ptr(0.0)

		_, err := NewService(api, logger.Nop()).Book(ctx, 7, 42, domain.RoleUser, r)
		assert.ErrorIs(t, err, ErrAccessDenied)
		api.AssertNotCalled(t, "BookTimeSlot", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("admin books with rate", func(t *testing.T) {
		api := new(mockAPI)
		api.On("BookTimeSlot", ctx, int64(7), testDate, int64(42), mock.MatchedBy(func(slot domain.NewTimeSlot) bool {
			return slot.Rate != nil && *slot.Rate == 500
		})).Return(&domain.TimeSlot{ID: 3}, nil)

		r := req(42)
		r.Rate = ptr.Ptr(500.0)

		_, err := NewService(api, logger.Nop()).Book(ctx, 7, 1, domain.RoleAdmin, r)
		require.NoError(t, err)
		api.AssertExpectations(t)
	})

	t.Run("conflict from remote api", func(t *testing.T) {
		api := new(mockAPI)
		api.On("BookTimeSlot", ctx, int64(7), testDate, int64(42), mock.Anything).
			Return(nil, fmt.Errorf("%w: taken", availabilityapi.ErrSlotConflict))

		_, err := NewService(api, logger.Nop()).Book(ctx, 7, 42, domain.RoleUser, req(0))
		assert.ErrorIs(t, err, ErrSlotConflict)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		api := new(mockAPI)
		api.On("UpdateTimeSlot", ctx, int64(3), domain.TimeSlotPatch{IsActive: ptr.Ptr(false)}).
			Return(&domain.TimeSlot{ID: 3}, nil)

		resp, err := NewService(api, logger.Nop()).Update(ctx, 3, &models.UpdateTimeSlotRequest{IsActive: ptr.Ptr(false)})
		require.NoError(t, err)
		assert.False(t, resp.IsActive)
	})

	t.Run("empty patch", func(t *testing.T) {
		_, err := NewService(new(mockAPI), logger.Nop()).Update(ctx, 3, &models.UpdateTimeSlotRequest{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("not found", func(t *testing.T) {
		api := new(mockAPI)
		api.On("UpdateTimeSlot", ctx, int64(3), mock.Anything).Return(nil, availabilityapi.ErrTimeSlotNotFound)

		_, err := NewService(api, logger.Nop()).Update(ctx, 3, &models.UpdateTimeSlotRequest{Rate: ptr.Ptr(100.0)})
		assert.ErrorIs(t, err, ErrTimeSlotNotFound)
	})
}

func TestMapBackendError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "remote unreachable", err: fmt.Errorf("%w: dial", availabilityapi.ErrInternal), want: ErrUpstream},
		{name: "remote garbage", err: availabilityapi.ErrInvalidResponse, want: ErrUpstream},
		{name: "remote rejected", err: availabilityapi.ErrRejected, want: ErrInvalidInput},
		{name: "local not found", err: timeslotRepo.ErrTimeSlotNotFound, want: ErrTimeSlotNotFound},
		{name: "local query failed", err: timeslotRepo.ErrExecQuery, want: ErrInternal},
		{name: "unknown", err: errors.New("boom"), want: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapBackendError("Op", tt.err), tt.want)
		})
	}
}
