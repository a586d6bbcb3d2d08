package toggle_slot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
	"github.com/m04kA/SMC-CourtSlotService/internal/infra/session"
	"github.com/m04kA/SMC-CourtSlotService/pkg/logger"
	"github.com/m04kA/SMC-CourtSlotService/pkg/ptr"
	"github.com/m04kA/SMC-CourtSlotService/pkg/types"
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

var testDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func testKey() domain.SelectionKey {
	return domain.SelectionKey{SessionID: "sess-1", CourtID: 7, Date: testDate}
}

func existingSlots() []*domain.TimeSlot {
	return []*domain.TimeSlot{
		{ID: 1, StartTime: "09:00", EndTime: "10:00", IsActive: true},
		{ID: 2, StartTime: "14:00", EndTime: "15:00", Rate: ptr.Ptr(500.0)},
	}
}

func newUseCase(api AvailabilityAPI, store SelectionStore) *UseCase {
	return NewUseCase(api, store, domain.RateMatchAny, logger.Nop())
}

func findCandidate(t *testing.T, grid []domain.TimeSlotCandidate, at types.TimeString) domain.TimeSlotCandidate {
	t.Helper()
	for _, c := range grid {
		if c.Time == at {
			return c
		}
	}
	t.Fatalf("candidate %s not found", at)
	return domain.TimeSlotCandidate{}
}

func TestUseCase_Execute_Toggle(t *testing.T) {
	ctx := context.Background()
	api := new(mockAPI)
	api.On("ListTimeSlots", ctx, int64(7), testDate).Return(existingSlots(), nil)
	store := session.NewMemoryStore(time.Hour, time.Minute)
	uc := newUseCase(api, store)

	req := &Request{SessionID: "sess-1", CourtID: 7, Date: testDate, Time: "11:00"}

	resp, err := uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.Equal(t, []types.TimeString{"11:00"}, resp.Selected)
	assert.True(t, findCandidate(t, resp.Candidates, "11:00").IsSelected)

	// Повторное переключение снимает выбор
	resp, err = uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.Empty(t, resp.Selected)
	assert.False(t, findCandidate(t, resp.Candidates, "11:00").IsSelected)

	stored, err := store.Get(ctx, testKey())
	require.NoError(t, err)
	assert.True(t, stored.IsEmpty())
}

func TestUseCase_Execute_UnavailableIsNoop(t *testing.T) {
	ctx := context.Background()

	for _, at := range []types.TimeString{"09:00", "14:00"} {
		t.Run(at.String(), func(t *testing.T) {
			api := new(mockAPI)
			api.On("ListTimeSlots", ctx, int64(7), testDate).Return(existingSlots(), nil)
			store := session.NewMemoryStore(time.Hour, time.Minute)
			require.NoError(t, store.Save(ctx, testKey(), domain.NewSelection("16:00")))

			resp, err := newUseCase(api, store).Execute(ctx, &Request{SessionID: "sess-1", CourtID: 7, Date: testDate, Time: at})
			require.NoError(t, err)
			assert.False(t, resp.Changed)
			assert.Equal(t, []types.TimeString{"16:00"}, resp.Selected)
			assert.False(t, findCandidate(t, resp.Candidates, at).IsSelected)
		})
	}
}

func TestUseCase_Execute_SelectionOwner(t *testing.T) {
	ctx := context.Background()
	api := new(mockAPI)
	api.On("ListTimeSlots", ctx, int64(7), testDate).Return(existingSlots(), nil)
	store := session.NewMemoryStore(time.Hour, time.Minute)
	uc := newUseCase(api, store)

	// Анонимный выбор привязывается к первому пользователю с X-User-ID
	_, err := uc.Execute(ctx, &Request{SessionID: "sess-1", CourtID: 7, Date: testDate, Time: "10:00"})
	require.NoError(t, err)

	resp, err := uc.Execute(ctx, &Request{SessionID: "sess-1", CourtID: 7, Date: testDate, Time: "11:00", UserID: 42})
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:00", "11:00"}, resp.Selected)

	sel, err := store.Get(ctx, testKey())
	require.NoError(t, err)
	assert.Equal(t, int64(42), sel.Owner())

	_, err = uc.Execute(ctx, &Request{SessionID: "sess-1", CourtID: 7, Date: testDate, Time: "12:00", UserID: 43})
	assert.ErrorIs(t, err, ErrNotSelectionOwner)

	_, err = uc.Execute(ctx, &Request{SessionID: "sess-1", CourtID: 7, Date: testDate, Time: "12:00"})
	assert.ErrorIs(t, err, ErrNotSelectionOwner, "anonymous request cannot change a bound selection")

	sel, err = store.Get(ctx, testKey())
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:00", "11:00"}, sel.Times())
}

func TestUseCase_Execute_BindsOnUnchangedToggle(t *testing.T) {
	ctx := context.Background()
	api := new(mockAPI)
	api.On("ListTimeSlots", ctx, int64(7), testDate).Return(existingSlots(), nil)
	store := session.NewMemoryStore(time.Hour, time.Minute)
	require.NoError(t, store.Save(ctx, testKey(), domain.NewSelection("11:00")))

	// 09:00 занят, выбор не меняется, но владелец сохраняется
	resp, err := newUseCase(api, store).Execute(ctx, &Request{SessionID: "sess-1", CourtID: 7, Date: testDate, Time: "09:00", UserID: 42})
	require.NoError(t, err)
	assert.False(t, resp.Changed)

	sel, err := store.Get(ctx, testKey())
	require.NoError(t, err)
	assert.Equal(t, int64(42), sel.Owner())
}

func TestUseCase_Execute_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid input", func(t *testing.T) {
		uc := newUseCase(new(mockAPI), session.NewMemoryStore(time.Hour, time.Minute))

		for _, req := range []*Request{
			{CourtID: 7, Date: testDate, Time: "10:00"},
			{SessionID: "s", Date: testDate, Time: "10:00"},
			{SessionID: "s", CourtID: 7, Time: "10:00"},
			{SessionID: "s", CourtID: 7, Date: testDate},
			{SessionID: "s", CourtID: 7, Date: testDate, Time: "25:00"},
		} {
			_, err := uc.Execute(ctx, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		}
	})

	t.Run("time off the grid", func(t *testing.T) {
		api := new(mockAPI)
		api.On("ListTimeSlots", ctx, int64(7), testDate).Return(existingSlots(), nil)

		for _, at := range []types.TimeString{"05:00", "23:00", "10:30"} {
			_, err := newUseCase(api, session.NewMemoryStore(time.Hour, time.Minute)).
				Execute(ctx, &Request{SessionID: "sess-1", CourtID: 7, Date: testDate, Time: at})
			assert.ErrorIs(t, err, ErrCandidateNotFound, "time %s", at)
		}
	})

	t.Run("submission in progress", func(t *testing.T) {
		api := new(mockAPI)
		store := session.NewMemoryStore(time.Hour, time.Minute)
		_, ok, err := store.AcquireSubmitLock(ctx, testKey())
		require.NoError(t, err)
		require.True(t, ok)

		_, err = newUseCase(api, store).Execute(ctx, &Request{SessionID: "sess-1", CourtID: 7, Date: testDate, Time: "10:00"})
		assert.ErrorIs(t, err, ErrSubmissionInProgress)
		api.AssertNotCalled(t, "ListTimeSlots", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("fetch failure", func(t *testing.T) {
		api := new(mockAPI)
		api.On("ListTimeSlots", ctx, int64(7), testDate).Return(nil, errors.New("timeout"))

		_, err := newUseCase(api, session.NewMemoryStore(time.Hour, time.Minute)).
			Execute(ctx, &Request{SessionID: "sess-1", CourtID: 7, Date: testDate, Time: "10:00"})
		assert.ErrorIs(t, err, ErrFetchFailure)
	})
}
