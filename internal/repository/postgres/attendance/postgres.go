package attendance

import (
	"context"
	"errors"

	attendancedomain "evac-app-go/internal/domain/attendance"
	registrydomain "evac-app-go/internal/domain/registry"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	uniqueViolationCode = "23505"
	openRecordIndex     = "uniq_attendance_open_per_individual"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(attendancedomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetRecord(ctx context.Context, recordID string) (*attendancedomain.Record, error) {
	var record attendancedomain.Record
	if err := r.db.WithContext(ctx).First(&record, "id = ?", recordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attendancedomain.ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *PostgresRepository) GetRecordForUpdate(ctx context.Context, recordID string) (*attendancedomain.Record, error) {
	var record attendancedomain.Record
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&record, "id = ?", recordID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attendancedomain.ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *PostgresRepository) GetOpenRecord(ctx context.Context, individualID string) (*attendancedomain.Record, error) {
	var record attendancedomain.Record
	err := r.db.WithContext(ctx).
		Where("individual_id = ? AND status = ?", individualID, attendancedomain.StatusCheckedIn).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *PostgresRepository) CreateRecord(ctx context.Context, record *attendancedomain.Record) error {
	return translateCreateError(r.db.WithContext(ctx).Create(record).Error)
}

// translateCreateError maps a violation of the one-open-record-per-individual
// index, raised when a concurrent check-in wins the race, onto the domain
// error instead of an opaque database failure.
func translateCreateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode && pgErr.ConstraintName == openRecordIndex {
		return attendancedomain.ErrAlreadyCheckedIn
	}
	return err
}

func (r *PostgresRepository) UpdateRecord(ctx context.Context, record *attendancedomain.Record) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *PostgresRepository) ListByIndividual(ctx context.Context, individualID string) ([]attendancedomain.Record, error) {
	var records []attendancedomain.Record
	err := r.db.WithContext(ctx).
		Where("individual_id = ?", individualID).
		Order("check_in_time asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PostgresRepository) ListOpenByCenter(ctx context.Context, centerID, eventID string) ([]attendancedomain.Record, error) {
	query := r.db.WithContext(ctx).
		Where("center_id = ? AND status = ?", centerID, attendancedomain.StatusCheckedIn)
	if eventID != "" {
		query = query.Where("event_id = ?", eventID)
	}

	var records []attendancedomain.Record
	if err := query.Order("check_in_time asc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PostgresRepository) RecalculateOccupancy(ctx context.Context, centerID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&attendancedomain.Record{}).
		Where("center_id = ? AND status = ?", centerID, attendancedomain.StatusCheckedIn).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	result := r.db.WithContext(ctx).
		Model(&registrydomain.EvacuationCenter{}).
		Where("id = ?", centerID).
		Update("current_occupancy", count)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, registrydomain.ErrCenterNotFound
	}

	return int(count), nil
}
