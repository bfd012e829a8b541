package services

import (
	"MindWellGo/models"
	"strings"
)

// Fallback sentences, in the order their rules are evaluated
const (
	MindfulnessSentence     = "Consider practicing deep breathing exercises or mindfulness meditation to help manage your emotions."
	HighStressSentence      = "Your stress level is high. Try taking short breaks throughout the day and engaging in physical activity."
	SleepDeprivedSentence   = "You might be sleep deprived. Try to establish a regular sleep schedule and create a relaxing bedtime routine."
	OversleepingSentence    = "You're sleeping more than usual. Consider maintaining a regular sleep schedule and engaging in daytime activities."
	HighAnxietySentence     = "Your anxiety level is high. Consider practicing grounding techniques or reaching out to a trusted friend or family member."
	HighDepressionSentence  = "You're experiencing significant depressive symptoms. Consider reaching out to a mental health professional for support."
	LowEnergySentence       = "Your energy level is low. Try to maintain a balanced diet, stay hydrated, and engage in light physical activity."
	EncouragementSentence   = "Keep up the good work! Continue monitoring your mental health and reach out for support if needed."
	ProfessionalHelpClosing = "Remember that it's okay to seek professional help if you're struggling. Your mental health is important."
)

const (
	highScaleThreshold = 7
	lowEnergyThreshold = 3
	minSleepHours      = 6
	maxSleepHours      = 10
)

var negativeMoods = []models.Mood{
	models.MoodSad,
	models.MoodFrustrated,
	models.MoodAngry,
	models.MoodAnxious,
	models.MoodOverwhelmed,
}

// RecommendationRule appends Sentence when Applies matches the report
type RecommendationRule struct {
	Name     string
	Applies  func(SelfReport) bool
	Sentence string
}

// FallbackRules is evaluated top to bottom and every match is kept.
// Output follows this declaration order, not severity.
// The two sleep rules cannot both match since their ranges do not overlap.
var FallbackRules = []RecommendationRule{
	{
		Name:     "negative_mood",
		Applies:  func(r SelfReport) bool { return containsMood(negativeMoods, r.Mood) },
		Sentence: MindfulnessSentence,
	},
	{
		Name:     "high_stress",
		Applies:  func(r SelfReport) bool { return r.StressLevel >= highScaleThreshold },
		Sentence: HighStressSentence,
	},
	{
		Name:     "short_sleep",
		Applies:  func(r SelfReport) bool { return r.SleepHours < minSleepHours },
		Sentence: SleepDeprivedSentence,
	},
	{
		Name:     "long_sleep",
		Applies:  func(r SelfReport) bool { return r.SleepHours > maxSleepHours },
		Sentence: OversleepingSentence,
	},
	{
		Name:     "high_anxiety",
		Applies:  func(r SelfReport) bool { return atLeast(r.Anxiety, highScaleThreshold) },
		Sentence: HighAnxietySentence,
	},
	{
		Name:     "high_depression",
		Applies:  func(r SelfReport) bool { return atLeast(r.Depression, highScaleThreshold) },
		Sentence: HighDepressionSentence,
	},
	{
		Name:     "low_energy",
		Applies:  func(r SelfReport) bool { return atMost(r.EnergyLevel, lowEnergyThreshold) },
		Sentence: LowEnergySentence,
	},
}

// MatchingFallbackSentences returns the sentences of every rule that matches
// the report, in rule order.
func MatchingFallbackSentences(report SelfReport) []string {
	var sentences []string
	for _, rule := range FallbackRules {
		if rule.Applies(report) {
			sentences = append(sentences, rule.Sentence)
		}
	}
	return sentences
}

// FallbackRecommendation builds the rule-based recommendation.
// It is deterministic and has no side effects.
func FallbackRecommendation(report SelfReport) string {
	sentences := MatchingFallbackSentences(report)
	if len(sentences) == 0 {
		sentences = append(sentences, EncouragementSentence)
	}
	sentences = append(sentences, ProfessionalHelpClosing)
	return strings.Join(sentences, " ")
}

func containsMood(moods []models.Mood, m models.Mood) bool {
	for _, candidate := range moods {
		if candidate == m {
			return true
		}
	}
	return false
}

// an absent scale never matches
func atLeast(v *float64, threshold float64) bool {
	return v != nil && *v >= threshold
}

func atMost(v *float64, threshold float64) bool {
	return v != nil && *v <= threshold
}
