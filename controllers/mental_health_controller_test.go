package controllers

import (
	"MindWellGo/config"
	"MindWellGo/middleware"
	"MindWellGo/models"
	"MindWellGo/services"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubRecommender struct {
	text    string
	reports []services.SelfReport
}

func (s *stubRecommender) Recommend(ctx context.Context, report services.SelfReport) string {
	s.reports = append(s.reports, report)
	return s.text
}

type testEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	recommender *stubRecommender
}

func newTestEnv(t *testing.T, authenticatedUID string) *testEnv {
	t.Helper()
	return newTestEnvWithCache(t, authenticatedUID, nil)
}

func newCachedTestEnv(t *testing.T) (*testEnv, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return newTestEnvWithCache(t, "", services.NewProgressCache(client, time.Minute)), mr
}

func newTestEnvWithCache(t *testing.T, authenticatedUID string, cache *services.ProgressCache) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := config.OpenDB(config.Config{
		Environment: "test",
		DBDriver:    "sqlite",
		DBPath:      filepath.Join(t.TempDir(), "mindwell.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	recommender := &stubRecommender{text: "Take a walk."}
	controller := NewMentalHealthController(services.NewRecordStore(db), recommender, cache)

	r := gin.New()
	if authenticatedUID != "" {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.ContextUserIDKey, authenticatedUID)
			c.Next()
		})
	}
	r.POST("/data", controller.SubmitData)
	r.GET("/progress", controller.GetProgress)

	return &testEnv{db: db, router: r, recommender: recommender}
}

func (e *testEnv) post(t *testing.T, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	switch b := body.(type) {
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(http.MethodPost, "/data", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) count(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&models.MentalHealthRecord{}).Count(&n).Error)
	return n
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func validPayload() map[string]any {
	return map[string]any{
		"userId":      "user-1",
		"mood":        "sad",
		"stressLevel": 8,
		"sleepHours":  5,
		"anxiety":     4,
		"depression":  2,
		"energyLevel": 6,
		"thoughts":    "busy week",
	}
}

func TestSubmitData_Success(t *testing.T) {
	env := newTestEnv(t, "")

	w := env.post(t, validPayload())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SubmitMentalHealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Data saved successfully", resp.Message)
	assert.Equal(t, "Take a walk.", resp.Recommendation)

	require.Len(t, env.recommender.reports, 1)
	report := env.recommender.reports[0]
	assert.Equal(t, models.MoodSad, report.Mood)
	assert.Equal(t, 8.0, report.StressLevel)
	assert.Equal(t, 5.0, report.SleepHours)
	require.NotNil(t, report.Anxiety)
	assert.Equal(t, 4.0, *report.Anxiety)
	assert.Equal(t, "busy week", report.Thoughts)

	var stored models.MentalHealthRecord
	require.NoError(t, env.db.First(&stored).Error)
	assert.Equal(t, "user-1", stored.UserID)
	assert.Equal(t, models.MoodSad, stored.Mood)
	assert.Equal(t, 8.0, stored.StressLevel)
	assert.Equal(t, 5.0, stored.SleepHours)
	assert.False(t, stored.Timestamp.IsZero())
}

func TestSubmitData_ZeroScalesAreAccepted(t *testing.T) {
	env := newTestEnv(t, "")

	payload := validPayload()
	payload["stressLevel"] = 0
	payload["sleepHours"] = 0
	w := env.post(t, payload)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 1, env.count(t))
}

func TestSubmitData_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		modify func(map[string]any)
	}{
		{"missing mood", func(p map[string]any) { delete(p, "mood") }},
		{"missing stress", func(p map[string]any) { delete(p, "stressLevel") }},
		{"missing sleep", func(p map[string]any) { delete(p, "sleepHours") }},
		{"missing user", func(p map[string]any) { delete(p, "userId") }},
		{"unknown mood", func(p map[string]any) { p["mood"] = "ecstatic" }},
		{"non numeric stress", func(p map[string]any) { p["stressLevel"] = "high" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, "")
			payload := validPayload()
			tt.modify(payload)

			w := env.post(t, payload)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.NotEmpty(t, decodeError(t, w))
			assert.Zero(t, env.count(t))
			assert.Empty(t, env.recommender.reports)
		})
	}
}

func TestSubmitData_MalformedJSON(t *testing.T) {
	env := newTestEnv(t, "")
	w := env.post(t, "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitData_FormMoodThatCannotBeStored(t *testing.T) {
	for _, mood := range []string{"content", "frustrated", "angry", "anxious", "overwhelmed"} {
		t.Run(mood, func(t *testing.T) {
			env := newTestEnv(t, "")
			payload := validPayload()
			payload["mood"] = mood

			w := env.post(t, payload)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
			assert.Contains(t, decodeError(t, w), mood)
			assert.Zero(t, env.count(t))
			assert.Empty(t, env.recommender.reports, "no recommendation without a stored record")
		})
	}
}

func TestSubmitData_MoodIsNormalized(t *testing.T) {
	env := newTestEnv(t, "")
	payload := validPayload()
	payload["mood"] = " Neutral "

	w := env.post(t, payload)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.MentalHealthRecord
	require.NoError(t, env.db.First(&stored).Error)
	assert.Equal(t, models.MoodNeutral, stored.Mood)
}

func TestSubmitData_StorageFailure(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, env.db.Migrator().DropTable(&models.MentalHealthRecord{}))

	w := env.post(t, validPayload())
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to save data", decodeError(t, w))
	assert.Empty(t, env.recommender.reports)
}

func TestSubmitData_AuthenticatedUser(t *testing.T) {
	t.Run("token identity fills missing userId", func(t *testing.T) {
		env := newTestEnv(t, "token-user")
		payload := validPayload()
		delete(payload, "userId")

		w := env.post(t, payload)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var stored models.MentalHealthRecord
		require.NoError(t, env.db.First(&stored).Error)
		assert.Equal(t, "token-user", stored.UserID)
	})

	t.Run("mismatched userId is forbidden", func(t *testing.T) {
		env := newTestEnv(t, "token-user")

		w := env.post(t, validPayload())
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Zero(t, env.count(t))
	})
}

func TestGetProgress_RoundTrip(t *testing.T) {
	env := newTestEnv(t, "")

	first := validPayload()
	first["mood"] = "happy"
	first["stressLevel"] = 3
	first["sleepHours"] = 7.5
	second := validPayload()

	require.Equal(t, http.StatusOK, env.post(t, first).Code)
	require.Equal(t, http.StatusOK, env.post(t, second).Code)
	other := validPayload()
	other["userId"] = "user-2"
	require.Equal(t, http.StatusOK, env.post(t, other).Code)

	var stored []models.MentalHealthRecord
	require.NoError(t, env.db.Where("user_id = ?", "user-1").Order("timestamp ASC").Order("id ASC").Find(&stored).Error)
	require.Len(t, stored, 2)

	w := env.get(t, "/progress?userId=user-1")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var progress []models.ProgressRecordResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &progress))
	require.Len(t, progress, 2)

	for i, got := range progress {
		want := stored[i]
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, "user-1", got.UserID)
		assert.Equal(t, want.Mood, got.Mood)
		assert.Equal(t, want.StressLevel, got.StressLevel)
		assert.Equal(t, want.SleepHours, got.SleepHours)
		assert.True(t, want.Timestamp.Equal(got.Timestamp), "want %v, got %v", want.Timestamp, got.Timestamp)
	}
	assert.False(t, progress[1].Timestamp.Before(progress[0].Timestamp))

	moods := []models.Mood{progress[0].Mood, progress[1].Mood}
	assert.ElementsMatch(t, []models.Mood{models.MoodHappy, models.MoodSad}, moods)
}

func TestGetProgress_Empty(t *testing.T) {
	env := newTestEnv(t, "")

	w := env.get(t, "/progress?userId=nobody")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestGetProgress_MissingUser(t *testing.T) {
	env := newTestEnv(t, "")
	w := env.get(t, "/progress")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProgress_Authenticated(t *testing.T) {
	env := newTestEnv(t, "user-1")
	payload := validPayload()
	require.Equal(t, http.StatusOK, env.post(t, payload).Code)

	w := env.get(t, "/progress")
	require.Equal(t, http.StatusOK, w.Code)
	var progress []models.ProgressRecordResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &progress))
	assert.Len(t, progress, 1)

	w = env.get(t, "/progress?userId=user-2")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetProgress_StorageFailure(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, env.db.Migrator().DropTable(&models.MentalHealthRecord{}))

	w := env.get(t, "/progress?userId=user-1")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to fetch progress", decodeError(t, w))
}

func decodeProgress(t *testing.T, w *httptest.ResponseRecorder) []models.ProgressRecordResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var progress []models.ProgressRecordResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &progress))
	return progress
}

func TestGetProgress_ServedFromCache(t *testing.T) {
	env, mr := newCachedTestEnv(t)
	require.Equal(t, http.StatusOK, env.post(t, validPayload()).Code)

	first := decodeProgress(t, env.get(t, "/progress?userId=user-1"))
	require.Len(t, first, 1)
	require.True(t, mr.Exists("mindwell:progress:user-1"))

	// written behind the controller's back, so only a database read sees it
	require.NoError(t, services.NewRecordStore(env.db).Create(context.Background(),
		&models.MentalHealthRecord{UserID: "user-1", Mood: models.MoodHappy, StressLevel: 1, SleepHours: 8}))

	second := decodeProgress(t, env.get(t, "/progress?userId=user-1"))
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.True(t, first[0].Timestamp.Equal(second[0].Timestamp))
}

func TestSubmitData_InvalidatesCachedProgress(t *testing.T) {
	env, mr := newCachedTestEnv(t)

	assert.Empty(t, decodeProgress(t, env.get(t, "/progress?userId=user-1")))
	assert.Empty(t, decodeProgress(t, env.get(t, "/progress?userId=user-2")))
	require.True(t, mr.Exists("mindwell:progress:user-1"))

	require.Equal(t, http.StatusOK, env.post(t, validPayload()).Code)
	assert.False(t, mr.Exists("mindwell:progress:user-1"))
	assert.True(t, mr.Exists("mindwell:progress:user-2"))

	assert.Len(t, decodeProgress(t, env.get(t, "/progress?userId=user-1")), 1)
}

func TestSubmitData_ScalesAsNumericStrings(t *testing.T) {
	env := newTestEnv(t, "")
	payload := validPayload()
	payload["stressLevel"] = "7"
	payload["sleepHours"] = "6.5"
	payload["anxiety"] = "3"

	w := env.post(t, payload)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.MentalHealthRecord
	require.NoError(t, env.db.First(&stored).Error)
	assert.Equal(t, 7.0, stored.StressLevel)
	assert.Equal(t, 6.5, stored.SleepHours)

	require.Len(t, env.recommender.reports, 1)
	require.NotNil(t, env.recommender.reports[0].Anxiety)
	assert.Equal(t, 3.0, *env.recommender.reports[0].Anxiety)
}
