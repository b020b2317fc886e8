package service

import (
	"errors"
	"strings"

	"github.com/aryansawant3579-cell/review-app/internal/app/model"
)

var (
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrEmptyContent  = errors.New("review content must not be empty")
)

// Rating dominates classification; keywords only break the tie at a
// 3-star review. Keeping the rule set fixed keeps dashboard metrics
// reproducible for identical input.
var positiveKeywords = []string{
	"excellent", "great", "good", "amazing", "wonderful", "fantastic", "love", "perfect",
}

var negativeKeywords = []string{
	"bad", "poor", "terrible", "awful", "hate", "worst", "horrible", "disgusting",
}

// Classify derives sentiment for an incoming review and normalizes its
// category hint. It is pure: identical input always yields identical
// output.
func Classify(content string, rating int, category string) (model.Sentiment, model.ReviewCategory, error) {
	if rating < 1 || rating > 5 {
		return "", "", ErrInvalidRating
	}
	if strings.TrimSpace(content) == "" {
		return "", "", ErrEmptyContent
	}

	return classifySentiment(content, rating), model.NormalizeCategory(category), nil
}

func classifySentiment(content string, rating int) model.Sentiment {
	switch {
	case rating >= 4:
		return model.SentimentPositive
	case rating <= 2:
		return model.SentimentNegative
	}

	lower := strings.ToLower(content)
	positive := countKeywords(lower, positiveKeywords)
	negative := countKeywords(lower, negativeKeywords)

	switch {
	case positive > negative:
		return model.SentimentPositive
	case negative > positive:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}

func countKeywords(content string, keywords []string) int {
	count := 0
	for _, keyword := range keywords {
		if strings.Contains(content, keyword) {
			count++
		}
	}
	return count
}
