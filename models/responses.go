package models

import "time"

// SubmitMentalHealthResponse is returned after a check-in is saved
type SubmitMentalHealthResponse struct {
	Message        string `json:"message"`
	Recommendation string `json:"recommendation"`
}

// ProgressRecordResponse is one point of the trend history
type ProgressRecordResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Mood        Mood      `json:"mood"`
	StressLevel float64   `json:"stressLevel"`
	SleepHours  float64   `json:"sleepHours"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewProgressRecordResponse projects a stored record for the trend chart
func NewProgressRecordResponse(record MentalHealthRecord) ProgressRecordResponse {
	return ProgressRecordResponse{
		ID:          record.ID,
		UserID:      record.UserID,
		Mood:        record.Mood,
		StressLevel: record.StressLevel,
		SleepHours:  record.SleepHours,
		Timestamp:   record.Timestamp,
	}
}

// TestTokenResponse carries a development token
type TestTokenResponse struct {
	Token string `json:"token"`
}
