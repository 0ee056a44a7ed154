package format

import (
	"math"
	"strconv"

	"github.com/NikitArias/online-store-loyalty/internal/models"
)

// AverageRating returns the arithmetic mean of the review ratings rounded to
// one decimal place. ok is false when there are no reviews: a product nobody
// rated is rendered as "not yet rated", never as 0.0.
func AverageRating(reviews []models.Review) (avg float64, ok bool) {
	if len(reviews) == 0 {
		return 0, false
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg = float64(sum) / float64(len(reviews))
	return math.Round(avg*10) / 10, true
}

// RatingLabel renders the average for display, e.g. "4.0".
func RatingLabel(reviews []models.Review) string {
	avg, ok := AverageRating(reviews)
	if !ok {
		return "not yet rated"
	}
	return strconv.FormatFloat(avg, 'f', 1, 64)
}
