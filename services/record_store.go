package services

import (
	"MindWellGo/models"
	"MindWellGo/utils"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// RecordStore persists check-in records. Records are append-only.
type RecordStore struct {
	db *gorm.DB
}

func NewRecordStore(db *gorm.DB) *RecordStore {
	return &RecordStore{db: db}
}

// Create inserts a new record, assigning an ID when missing
func (s *RecordStore) Create(ctx context.Context, record *models.MentalHealthRecord) error {
	if record.ID == "" {
		record.ID = utils.GenerateID()
	}
	if !record.Timestamp.IsZero() {
		record.Timestamp = models.NormalizeTimestamp(record.Timestamp)
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("create mental health record: %w", err)
	}
	return nil
}

// ListByUser returns a user's records, oldest first
func (s *RecordStore) ListByUser(ctx context.Context, userID string) ([]models.MentalHealthRecord, error) {
	var records []models.MentalHealthRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp ASC").
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list mental health records: %w", err)
	}
	return records, nil
}
