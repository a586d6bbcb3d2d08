package toggle_slot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtSlotService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtSlotService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
	toggleSlot "github.com/m04kA/SMC-CourtSlotService/internal/usecase/toggle_slot"
	"github.com/m04kA/SMC-CourtSlotService/pkg/logger"
	"github.com/m04kA/SMC-CourtSlotService/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *toggleSlot.Request) (*toggleSlot.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*toggleSlot.Response), args.Error(1)
}

func toggle(uc ToggleSlotUseCase, session, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/courts/{courtId}/slot-grid/toggle", NewHandler(uc, logger.Nop()).Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/courts/7/slot-grid/toggle", strings.NewReader(body))
	if session != "" {
		req.Header.Set(handlers.SessionHeader, session)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

var testDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func TestHandler_Toggle(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, &toggleSlot.Request{
		SessionID: "sess-1",
		CourtID:   7,
		Date:      testDate,
		Time:      "14:00",
	}).Return(&toggleSlot.Response{
		SessionID:  "sess-1",
		CourtID:    7,
		Date:       testDate,
		Changed:    true,
		Candidates: []domain.TimeSlotCandidate{{Time: "14:00", DisplayTime: "2:00 PM", IsSelected: true}},
		Selected:   []types.TimeString{"14:00"},
	}, nil)

	rec := toggle(uc, "sess-1", `{"date":"2024-06-01","time":"14:00"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ToggleSlotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Changed)
	assert.Equal(t, []string{"14:00"}, resp.Selected)
	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, "selected", resp.Candidates[0].State)
	uc.AssertExpectations(t)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not on grid", err: toggleSlot.ErrCandidateNotFound, wantStatus: http.StatusNotFound},
		{name: "submitting", err: toggleSlot.ErrSubmissionInProgress, wantStatus: http.StatusConflict},
		{name: "selection of another user", err: toggleSlot.ErrNotSelectionOwner, wantStatus: http.StatusForbidden},
		{name: "fetch failure", err: fmt.Errorf("%w: timeout", toggleSlot.ErrFetchFailure), wantStatus: http.StatusBadGateway},
		{name: "internal", err: toggleSlot.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := toggle(uc, "sess-1", `{"date":"2024-06-01","time":"05:00"}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_PassesAuthenticatedUser(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *toggleSlot.Request) bool {
		return req.UserID == 42
	})).Return(&toggleSlot.Response{SessionID: "sess-1", CourtID: 7, Date: testDate}, nil)

	r := mux.NewRouter()
	r.Use(middleware.OptionalAuth)
	r.HandleFunc("/api/v1/courts/{courtId}/slot-grid/toggle", NewHandler(uc, logger.Nop()).Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/courts/7/slot-grid/toggle",
		strings.NewReader(`{"date":"2024-06-01","time":"14:00"}`))
	req.Header.Set(handlers.SessionHeader, "sess-1")
	req.Header.Set(middleware.UserIDHeader, "42")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandler_BadRequests(t *testing.T) {
	uc := new(mockUseCase)

	assert.Equal(t, http.StatusBadRequest, toggle(uc, "", `{"date":"2024-06-01","time":"14:00"}`).Code)
	assert.Equal(t, http.StatusBadRequest, toggle(uc, "sess-1", `{"date":"2024-06-01","time":"2pm"}`).Code)
	assert.Equal(t, http.StatusBadRequest, toggle(uc, "sess-1", `not json`).Code)

	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
