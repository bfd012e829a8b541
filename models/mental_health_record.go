package models

import (
	"time"

	"gorm.io/gorm"
)

// MentalHealthRecord is the stored projection of a check-in. Only mood,
// stress and sleep are kept; the remaining scales feed the recommendation.
type MentalHealthRecord struct {
	ID          string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	UserID      string    `gorm:"type:varchar(50);not null;index:idx_mental_health_user_time" json:"userId"`
	Mood        Mood      `gorm:"type:varchar(20);not null" json:"mood"`
	StressLevel float64   `gorm:"not null" json:"stressLevel"`
	SleepHours  float64   `gorm:"not null" json:"sleepHours"`
	Timestamp   time.Time `gorm:"not null;index:idx_mental_health_user_time" json:"timestamp"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (MentalHealthRecord) TableName() string {
	return "mental_health_records"
}

// BeforeCreate enforces the mood enum and defaults the timestamp
func (r *MentalHealthRecord) BeforeCreate(tx *gorm.DB) error {
	if err := r.Mood.ValidateForStorage(); err != nil {
		return err
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = NormalizeTimestamp(time.Now())
	}
	return nil
}

// NormalizeTimestamp truncates to milliseconds in UTC, the precision every
// supported database keeps.
func NormalizeTimestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
