package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/velvetlens/studio-booking/internal/domain/booking"
	"github.com/velvetlens/studio-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Booking (create)
// --------------------------------------------------

// Book runs the conflict scan and both inserts in one serializable
// transaction, holding a per-date advisory lock so two racing requests for
// the same day cannot both pass the scan.
func (r *BookingGormRepository) Book(
	ctx context.Context,
	s *models.Session,
) (*models.CalendarEvent, error) {

	slot := domain.NewSlot(s.StartTime, s.DurationMin)

	dayStart := time.Date(
		s.StartTime.Year(), s.StartTime.Month(), s.StartTime.Day(),
		0, 0, 0, 0,
		s.StartTime.Location(),
	)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var ev *models.CalendarEvent

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(?)",
			dateLockKey(s.StartTime),
		).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.
			Model(&models.CalendarEvent{}).
			Where("start_time >= ? AND start_time < ?", dayStart, dayEnd).
			Where("start_time < ? AND end_time > ?", slot.End, slot.Start).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return domain.ErrSlotTaken()
		}

		if err := tx.Create(s).Error; err != nil {
			return err
		}

		ev = domain.EventFor(s, domain.DefaultEventColor)
		return tx.Create(ev).Error
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if err != nil {
		if isWriteConflict(err) {
			return nil, domain.ErrSlotTaken()
		}
		return nil, err
	}

	return ev, nil
}

func (r *BookingGormRepository) CreateCustom(
	ctx context.Context,
	s *models.Session,
) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// --------------------------------------------------
// Booking (lookup)
// --------------------------------------------------

func (r *BookingGormRepository) GetSessionForOwner(
	ctx context.Context,
	sessionID uint,
	ownerID uint,
) (*models.Session, error) {

	var s models.Session
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", sessionID, ownerID).
		First(&s).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Absent and not-owned are deliberately the same error.
			return nil, domain.ErrNotFound("session_not_found", "session not found")
		}
		return nil, err
	}

	return &s, nil
}

func (r *BookingGormRepository) GetSessionByID(
	ctx context.Context,
	sessionID uint,
) (*models.Session, error) {

	var s models.Session
	if err := r.db.WithContext(ctx).First(&s, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound("session_not_found", "session not found")
		}
		return nil, err
	}

	return &s, nil
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) SaveSession(
	ctx context.Context,
	s *models.Session,
) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *BookingGormRepository) DeleteEventForSession(
	ctx context.Context,
	sessionID uint,
) error {
	return r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&models.CalendarEvent{}).Error
}

// --------------------------------------------------
// Reporting
// --------------------------------------------------

func (r *BookingGormRepository) ListUpcoming(
	ctx context.Context,
	from time.Time,
) ([]models.Session, error) {

	var sessions []models.Session
	if err := r.db.WithContext(ctx).
		Select("id", "title", "start_time", "duration_min", "status").
		Where("status <> ? AND start_time >= ?", string(domain.StatusCancelled), from).
		Order("start_time ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}

	return sessions, nil
}

// --------------------------------------------------
// Postgres error mapping
// --------------------------------------------------

const (
	pgSerializationFailure = "40001"
	pgUniqueViolation      = "23505"
	pgExclusionViolation   = "23P01"
)

// isWriteConflict reports whether err is Postgres telling us a concurrent
// writer got there first. Those all collapse into the slot conflict the
// caller already knows how to handle.
func isWriteConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgSerializationFailure, pgUniqueViolation, pgExclusionViolation:
		return true
	}
	return false
}

// dateLockKey folds a calendar date into the advisory lock keyspace.
func dateLockKey(t time.Time) int64 {
	const ns int64 = 0x626b // "bk"
	y, m, d := t.Date()
	return ns<<32 | int64(y)*10000 + int64(m)*100 + int64(d)
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
