package service

import (
	"strings"
	"time"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// maxPlanDays bounds the length of a meal plan.
const maxPlanDays = 366

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns UTC
// midnight of the date it names in UTC.
func ParseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(models.DateKeyLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return models.TruncateToDay(t), nil
	}
	return time.Time{}, types.NewValidationError("%s must be a date in YYYY-MM-DD or RFC 3339 format", field)
}
