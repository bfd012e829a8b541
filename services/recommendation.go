package services

import (
	"MindWellGo/config"
	"MindWellGo/metrics"
	"MindWellGo/models"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

const recommendationSystemPrompt = "You are a compassionate mental health AI assistant. Provide supportive, practical recommendations while always encouraging professional help when appropriate."

var errEmptyCompletion = errors.New("text generation returned no content")

// SelfReport is a check-in as seen by the recommendation service
type SelfReport struct {
	Mood        models.Mood
	StressLevel float64
	SleepHours  float64
	Anxiety     *float64
	Depression  *float64
	EnergyLevel *float64
	Thoughts    string
}

// NewSelfReport converts a validated request
func NewSelfReport(req models.SubmitMentalHealthRequest) SelfReport {
	report := SelfReport{
		Mood:        req.Mood,
		Anxiety:     req.Anxiety.Float64(),
		Depression:  req.Depression.Float64(),
		EnergyLevel: req.EnergyLevel.Float64(),
		Thoughts:    req.Thoughts,
	}
	if req.StressLevel != nil {
		report.StressLevel = float64(*req.StressLevel)
	}
	if req.SleepHours != nil {
		report.SleepHours = float64(*req.SleepHours)
	}
	return report
}

// RecommendationOption configures a RecommendationService
type RecommendationOption func(*RecommendationService)

// WithTemperature sets the sampling temperature
func WithTemperature(temperature float64) RecommendationOption {
	return func(s *RecommendationService) {
		s.temperature = temperature
	}
}

// WithMaxTokens bounds the completion length
func WithMaxTokens(maxTokens int) RecommendationOption {
	return func(s *RecommendationService) {
		s.maxTokens = maxTokens
	}
}

// RecommendationService produces recommendations for check-ins
type RecommendationService struct {
	model       llms.Model
	temperature float64
	maxTokens   int
}

// NewRecommendationService creates the service. A nil model disables the
// generative path and every request gets the rule-based recommendation.
func NewRecommendationService(model llms.Model, opts ...RecommendationOption) *RecommendationService {
	s := &RecommendationService{
		model:       model,
		temperature: 0.7,
		maxTokens:   300,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recommend returns a recommendation for the report. It never fails: any
// problem with the text generation call yields FallbackRecommendation.
func (s *RecommendationService) Recommend(ctx context.Context, report SelfReport) string {
	text, err := s.generate(ctx, report)
	if err != nil {
		config.Logger.Warnw("AI recommendation failed, using fallback",
			"error", err,
			"mood", report.Mood,
		)
		metrics.RecommendationsTotal.WithLabelValues(metrics.SourceFallback).Inc()
		return FallbackRecommendation(report)
	}

	metrics.RecommendationsTotal.WithLabelValues(metrics.SourceAI).Inc()
	return text
}

func (s *RecommendationService) generate(ctx context.Context, report SelfReport) (text string, err error) {
	if s.model == nil {
		return "", ErrLLMNotConfigured
	}

	// a panic in the model client counts as a failed call
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("text generation panicked: %v", r)
		}
	}()

	messages := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(recommendationSystemPrompt)},
		},
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(BuildRecommendationPrompt(report))},
		},
	}

	response, err := s.model.GenerateContent(ctx, messages,
		llms.WithTemperature(s.temperature),
		llms.WithMaxTokens(s.maxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("generate recommendation: %w", err)
	}
	if response == nil || len(response.Choices) == 0 || response.Choices[0] == nil {
		return "", errEmptyCompletion
	}

	text = strings.TrimSpace(response.Choices[0].Content)
	if text == "" {
		return "", errEmptyCompletion
	}
	return text, nil
}

// BuildRecommendationPrompt renders the user prompt for a report
func BuildRecommendationPrompt(report SelfReport) string {
	thoughts := report.Thoughts
	if thoughts == "" {
		thoughts = "None provided"
	}

	return fmt.Sprintf(`As a mental health AI assistant, provide a personalized recommendation based on the following user data:
- Current mood: %s
- Stress level (1-10): %s
- Sleep hours: %s
- Anxiety level (1-10): %s
- Depression level (1-10): %s
- Energy level (1-10): %s
- Additional thoughts: %s

Please provide:
1. A brief analysis of their current mental health state
2. 2-3 specific, actionable recommendations
3. A supportive message encouraging professional help if needed
Keep the response concise, empathetic, and focused on practical steps.`,
		report.Mood,
		formatScale(&report.StressLevel),
		formatScale(&report.SleepHours),
		formatScale(report.Anxiety),
		formatScale(report.Depression),
		formatScale(report.EnergyLevel),
		thoughts,
	)
}

func formatScale(v *float64) string {
	if v == nil {
		return "not provided"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
