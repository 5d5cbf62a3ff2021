package registry

import (
	"context"
	"errors"

	registrydomain "evac-app-go/internal/domain/registry"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetCenter(ctx context.Context, centerID string) (*registrydomain.EvacuationCenter, error) {
	var center registrydomain.EvacuationCenter
	if err := r.db.WithContext(ctx).First(&center, "id = ?", centerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, registrydomain.ErrCenterNotFound
		}
		return nil, err
	}
	return &center, nil
}

func (r *PostgresRepository) ListCenters(ctx context.Context) ([]registrydomain.EvacuationCenter, error) {
	var centers []registrydomain.EvacuationCenter
	if err := r.db.WithContext(ctx).Order("name asc").Find(&centers).Error; err != nil {
		return nil, err
	}
	return centers, nil
}

func (r *PostgresRepository) ListActiveEventsForCenter(ctx context.Context, centerID string) ([]registrydomain.EventRef, error) {
	type eventRow struct {
		ID     string `gorm:"column:id"`
		Status string `gorm:"column:status"`
	}

	var rows []eventRow
	err := r.db.WithContext(ctx).
		Table("events").
		Select("events.id, events.status").
		Joins("join center_events on center_events.event_id = events.id").
		Where("center_events.center_id = ? AND events.status = ?", centerID, registrydomain.EventStatusActive).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	events := make([]registrydomain.EventRef, 0, len(rows))
	for _, row := range rows {
		events = append(events, registrydomain.EventRef{
			ID:     row.ID,
			Status: registrydomain.EventStatus(row.Status),
		})
	}
	return events, nil
}

func (r *PostgresRepository) GetIndividual(ctx context.Context, individualID string) (*registrydomain.Individual, error) {
	var individual registrydomain.Individual
	if err := r.db.WithContext(ctx).First(&individual, "id = ?", individualID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, registrydomain.ErrIndividualNotFound
		}
		return nil, err
	}
	return &individual, nil
}

func (r *PostgresRepository) GetHousehold(ctx context.Context, householdID string) (*registrydomain.Household, error) {
	var household registrydomain.Household
	if err := r.db.WithContext(ctx).First(&household, "id = ?", householdID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, registrydomain.ErrHouseholdNotFound
		}
		return nil, err
	}
	return &household, nil
}

func (r *PostgresRepository) ListHouseholdMembers(ctx context.Context, householdID string) ([]registrydomain.Individual, error) {
	var individuals []registrydomain.Individual
	err := r.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Order("last_name asc, first_name asc").
		Find(&individuals).Error
	if err != nil {
		return nil, err
	}
	return individuals, nil
}
