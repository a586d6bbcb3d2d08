package get_slot_grid

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtSlotService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
	getSlotGrid "github.com/m04kA/SMC-CourtSlotService/internal/usecase/get_slot_grid"
	"github.com/m04kA/SMC-CourtSlotService/pkg/logger"
	"github.com/m04kA/SMC-CourtSlotService/pkg/ptr"
	"github.com/m04kA/SMC-CourtSlotService/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *getSlotGrid.Request) (*getSlotGrid.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getSlotGrid.Response), args.Error(1)
}

func newRouter(uc GetSlotGridUseCase) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/courts/{courtId}/slot-grid", NewHandler(uc, logger.Nop()).Handle).Methods(http.MethodGet)
	return r
}

var testDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func TestHandler_Grid(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, &getSlotGrid.Request{SessionID: "", CourtID: 7, Date: testDate}).
		Return(&getSlotGrid.Response{
			SessionID: "new-session",
			CourtID:   7,
			Date:      testDate,
			Candidates: []domain.TimeSlotCandidate{
				{Time: "06:00", DisplayTime: "6:00 AM"},
				{Time: "09:00", DisplayTime: "9:00 AM", IsBooked: true},
				{Time: "14:00", DisplayTime: "2:00 PM", Rate: ptr.Ptr(500.0)},
				{Time: "15:00", DisplayTime: "3:00 PM", IsSelected: true},
			},
			Selected: []types.TimeString{"15:00"},
			Dropped:  []types.TimeString{},
		}, nil)

	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/courts/7/slot-grid?date=2024-06-01", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "new-session", rec.Header().Get(handlers.SessionHeader))

	var resp SlotGridResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2024-06-01", resp.Date)
	require.Len(t, resp.Candidates, 4)
	assert.Equal(t, "available", resp.Candidates[0].State)
	assert.Equal(t, "unavailable", resp.Candidates[1].State)
	assert.Equal(t, "unavailable", resp.Candidates[2].State)
	assert.Equal(t, "selected", resp.Candidates[3].State)
	assert.Equal(t, []string{"15:00"}, resp.Selected)
}

func TestHandler_FetchFailureIsBadGateway(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: timeout", getSlotGrid.ErrFetchFailure))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/courts/7/slot-grid?date=2024-06-01", nil)
	req.Header.Set(handlers.SessionHeader, "sess-1")
	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), "candidates")
}

func TestHandler_BadParams(t *testing.T) {
	uc := new(mockUseCase)
	r := newRouter(uc)

	for _, url := range []string{
		"/api/v1/courts/abc/slot-grid?date=2024-06-01",
		"/api/v1/courts/0/slot-grid?date=2024-06-01",
		"/api/v1/courts/7/slot-grid",
		"/api/v1/courts/7/slot-grid?date=2024-13-01",
	} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, url)
	}

	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
