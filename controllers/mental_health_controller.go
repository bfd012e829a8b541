package controllers

import (
	"MindWellGo/config"
	"MindWellGo/metrics"
	"MindWellGo/middleware"
	"MindWellGo/models"
	"MindWellGo/services"
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	saveSuccessMessage   = "Data saved successfully"
	saveFailureMessage   = "Failed to save data"
	progressFailMessage  = "Failed to fetch progress"
	missingUserIDMessage = "userId is required"
	userMismatchMessage  = "userId does not match the authenticated user"
)

var (
	errUserMismatch  = errors.New(userMismatchMessage)
	errMissingUserID = errors.New(missingUserIDMessage)
)

// Recommender produces a recommendation and never fails
type Recommender interface {
	Recommend(ctx context.Context, report services.SelfReport) string
}

type MentalHealthController struct {
	store       *services.RecordStore
	recommender Recommender
	cache       *services.ProgressCache
}

// NewMentalHealthController creates the controller. cache may be nil.
func NewMentalHealthController(store *services.RecordStore, recommender Recommender, cache *services.ProgressCache) *MentalHealthController {
	return &MentalHealthController{
		store:       store,
		recommender: recommender,
		cache:       cache,
	}
}

// SubmitData saves a check-in and returns a recommendation for it
func (mc *MentalHealthController) SubmitData(c *gin.Context) {
	var req models.SubmitMentalHealthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.Normalize()

	userID, err := resolveUserID(c, req.UserID)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		respondIdentityError(c, err)
		return
	}

	// form moods outside the record enum are rejected before the insert
	if err := req.Mood.ValidateForStorage(); err != nil {
		if errors.Is(err, models.ErrUnsupportedMood) {
			metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeUnsupported).Inc()
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record := models.MentalHealthRecord{
		UserID:      userID,
		Mood:        req.Mood,
		StressLevel: float64(*req.StressLevel),
		SleepHours:  float64(*req.SleepHours),
	}
	if err := mc.store.Create(c.Request.Context(), &record); err != nil {
		metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeStorageError).Inc()
		config.Logger.Errorw("failed to save mental health record", "error", err, "userId", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": saveFailureMessage})
		return
	}
	metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeSaved).Inc()

	mc.cache.Invalidate(c.Request.Context(), userID)

	recommendation := mc.recommender.Recommend(c.Request.Context(), services.NewSelfReport(req))

	c.JSON(http.StatusOK, models.SubmitMentalHealthResponse{
		Message:        saveSuccessMessage,
		Recommendation: recommendation,
	})
}

// GetProgress returns a user's stored check-ins, oldest first
func (mc *MentalHealthController) GetProgress(c *gin.Context) {
	userID, err := resolveUserID(c, strings.TrimSpace(c.Query("userId")))
	if err != nil {
		respondIdentityError(c, err)
		return
	}

	ctx := c.Request.Context()
	if cached, ok := mc.cache.Get(ctx, userID); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	generation, cacheable := mc.cache.Generation(ctx, userID)
	records, err := mc.store.ListByUser(ctx, userID)
	if err != nil {
		config.Logger.Errorw("failed to fetch progress", "error", err, "userId", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": progressFailMessage})
		return
	}

	progress := make([]models.ProgressRecordResponse, len(records))
	for i, record := range records {
		progress[i] = models.NewProgressRecordResponse(record)
	}
	if cacheable {
		mc.cache.Set(ctx, userID, generation, progress)
	}

	c.JSON(http.StatusOK, progress)
}

// resolveUserID picks the identity for a request. An authenticated user id
// wins over an empty requested one and must match a non-empty one.
func resolveUserID(c *gin.Context, requested string) (string, error) {
	authenticated := c.GetString(middleware.ContextUserIDKey)
	switch {
	case authenticated == "" && requested == "":
		return "", errMissingUserID
	case authenticated == "":
		return requested, nil
	case requested == "" || requested == authenticated:
		return authenticated, nil
	default:
		return "", errUserMismatch
	}
}

func respondIdentityError(c *gin.Context, err error) {
	if errors.Is(err, errUserMismatch) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
