package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hanbit-edu/tutoring-ledger-api/internal/models"
	appErrors "github.com/hanbit-edu/tutoring-ledger-api/pkg/errors"
)

// yearMonthQuery parses the required year and month query params.
func yearMonthQuery(c *gin.Context) (int, int, error) {
	year, errYear := strconv.Atoi(c.Query("year"))
	month, errMonth := strconv.Atoi(c.Query("month"))
	if errYear != nil || errMonth != nil || month < 1 || month > 12 {
		return 0, 0, appErrors.Clone(appErrors.ErrValidation, "year and month query params are required")
	}
	return year, month, nil
}

// yearMonthQueryOptional parses year and month when both are present, nil
// otherwise. The legacy views omit them and get the unconditional hide rule.
func yearMonthQueryOptional(c *gin.Context) (*models.YearMonth, error) {
	rawYear, rawMonth := c.Query("year"), c.Query("month")
	if rawYear == "" && rawMonth == "" {
		return nil, nil
	}
	year, month, err := yearMonthQuery(c)
	if err != nil {
		return nil, err
	}
	return &models.YearMonth{Year: year, Month: month}, nil
}

// subjectQuery maps the optional subject query param to a Subject.
func subjectQuery(c *gin.Context) models.Subject {
	raw := c.Query("subject")
	if raw == "" {
		return models.NoSubject()
	}
	return models.NewSubject(raw)
}

// statusesQuery parses the comma-separated statuses query param.
func statusesQuery(c *gin.Context) []models.AttendanceStatus {
	raw := c.Query("statuses")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	statuses := make([]models.AttendanceStatus, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			statuses = append(statuses, models.AttendanceStatus(part))
		}
	}
	return statuses
}
