package submit_slots

import (
	"fmt"

	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SessionID == "" {
		return fmt.Errorf("%w: sessionID is required", ErrInvalidInput)
	}

	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if !req.Mode.IsValid() {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, req.Mode)
	}

	if req.Rate != nil && *req.Rate < 0 {
		return fmt.Errorf("%w: rate must not be negative", ErrInvalidInput)
	}

	// Цену задает владелец при создании слотов, при бронировании она не передается
	if req.Rate != nil && req.Mode != domain.SubmitModeCreate {
		return fmt.Errorf("%w: rate is only allowed in %s mode", ErrInvalidInput, domain.SubmitModeCreate)
	}

	return nil
}

// validateRole проверяет, что роль позволяет выбранный режим
func validateRole(mode domain.SubmitMode, role string) error {
	if mode != domain.SubmitModeCreate {
		return nil
	}

	switch role {
	case domain.RoleOwner, domain.RoleAdmin:
		return nil
	default:
		return fmt.Errorf("%w: role=%q", ErrForbidden, role)
	}
}
