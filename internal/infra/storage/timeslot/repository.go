package timeslot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
	"github.com/m04kA/SMC-CourtSlotService/pkg/psqlbuilder"
)

const (
	tableName = "time_slots"

	// uniqueViolation код ошибки PostgreSQL для нарушения уникального индекса
	uniqueViolation = "23505"
)

var columns = []string{
	"id",
	"court_id",
	"slot_date",
	"start_time",
	"end_time",
	"rate",
	"is_active",
	"booked_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами кортов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListTimeSlots получает все слоты корта на дату, отсортированные по времени начала
func (r *Repository) ListTimeSlots(ctx context.Context, courtID int64, date time.Time) ([]*domain.TimeSlot, error) {
	query, args, err := buildListQuery(courtID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTimeSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTimeSlots - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.TimeSlot, 0)
	for rows.Next() {
		slot, err := scanTimeSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListTimeSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTimeSlots - iterate rows: %v", ErrExecQuery, err)
	}

	return slots, nil
}

// CreateTimeSlot создает запись о слоте без бронирования.
// Слот создается неактивным: он помечает время ценой, но не занимает его.
func (r *Repository) CreateTimeSlot(ctx context.Context, courtID int64, date time.Time, slot domain.NewTimeSlot) (*domain.TimeSlot, error) {
	query, args, err := buildInsertQuery(courtID, date, slot, false, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateTimeSlot - build insert query: %v", ErrBuildQuery, err)
	}

	created, err := scanTimeSlot(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapWriteError("CreateTimeSlot", err)
	}

	return created, nil
}

// BookTimeSlot создает активный слот, забронированный пользователем.
// Уникальный индекс по активным слотам не дает занять время дважды.
func (r *Repository) BookTimeSlot(ctx context.Context, courtID int64, date time.Time, userID int64, slot domain.NewTimeSlot) (*domain.TimeSlot, error) {
	query, args, err := buildInsertQuery(courtID, date, slot, true, &userID)
	if err != nil {
		return nil, fmt.Errorf("%w: BookTimeSlot - build insert query: %v", ErrBuildQuery, err)
	}

	booked, err := scanTimeSlot(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapWriteError("BookTimeSlot", err)
	}

	return booked, nil
}

// UpdateTimeSlot частично обновляет слот
func (r *Repository) UpdateTimeSlot(ctx context.Context, slotID int64, patch domain.TimeSlotPatch) (*domain.TimeSlot, error) {
	if patch.IsEmpty() {
		return nil, ErrNothingToUpdate
	}

	query, args, err := buildUpdateQuery(slotID, patch)
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateTimeSlot - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanTimeSlot(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id=%d", ErrTimeSlotNotFound, slotID)
		}
		return nil, mapWriteError("UpdateTimeSlot", err)
	}

	return updated, nil
}

func buildListQuery(courtID int64, date time.Time) (string, []interface{}, error) {
	return psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{
			"court_id":  courtID,
			"slot_date": date.Format(domain.DateFormat),
		}).
		OrderBy("start_time ASC", "id ASC").
		ToSql()
}

func buildInsertQuery(courtID int64, date time.Time, slot domain.NewTimeSlot, active bool, bookedBy *int64) (string, []interface{}, error) {
	return psqlbuilder.Insert(tableName).
		Columns(
			"court_id",
			"slot_date",
			"start_time",
			"end_time",
			"rate",
			"is_active",
			"booked_by",
		).
		Values(
			courtID,
			date.Format(domain.DateFormat),
			slot.StartTime,
			slot.EndTime,
			slot.Rate,
			active,
			bookedBy,
		).
		Suffix("RETURNING " + returningColumns()).
		ToSql()
}

func buildUpdateQuery(slotID int64, patch domain.TimeSlotPatch) (string, []interface{}, error) {
	builder := psqlbuilder.Update(tableName).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID})

	if patch.StartTime != nil {
		builder = builder.Set("start_time", *patch.StartTime)
	}
	if patch.EndTime != nil {
		builder = builder.Set("end_time", *patch.EndTime)
	}
	if patch.Rate != nil {
		builder = builder.Set("rate", *patch.Rate)
	}
	if patch.IsActive != nil {
		builder = builder.Set("is_active", *patch.IsActive)
	}

	return builder.Suffix("RETURNING " + returningColumns()).ToSql()
}

func returningColumns() string {
	return strings.Join(columns, ", ")
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTimeSlot(row rowScanner) (*domain.TimeSlot, error) {
	var (
		slot      domain.TimeSlot
		rate      sql.NullFloat64
		bookedBy  sql.NullInt64
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err := row.Scan(
		&slot.ID,
		&slot.CourtID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&rate,
		&slot.IsActive,
		&bookedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if rate.Valid {
		slot.Rate = &rate.Float64
	}
	if bookedBy.Valid {
		slot.BookedBy = &bookedBy.Int64
	}
	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

// mapWriteError переводит ошибки записи в ошибки репозитория
func mapWriteError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s - %s", ErrSlotConflict, op, pqErr.Message)
	}
	return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
}
