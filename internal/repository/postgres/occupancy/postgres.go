package occupancy

import (
	"context"

	attendancedomain "evac-app-go/internal/domain/attendance"
	registrydomain "evac-app-go/internal/domain/registry"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListCenterIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&registrydomain.EvacuationCenter{}).
		Order("id asc").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// RecalculateOccupancy recounts and overwrites in one transaction so a repair
// sweep racing the engine cannot write a stale count over a fresher one.
func (r *PostgresRepository) RecalculateOccupancy(ctx context.Context, centerID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&attendancedomain.Record{}).
			Where("center_id = ? AND status = ?", centerID, attendancedomain.StatusCheckedIn).
			Count(&count).Error
		if err != nil {
			return err
		}

		result := tx.Model(&registrydomain.EvacuationCenter{}).
			Where("id = ?", centerID).
			Update("current_occupancy", count)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return registrydomain.ErrCenterNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
