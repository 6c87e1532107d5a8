package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/hanbit-edu/tutoring-ledger-api/internal/models"
	"github.com/hanbit-edu/tutoring-ledger-api/pkg/config"
	appErrors "github.com/hanbit-edu/tutoring-ledger-api/pkg/errors"
)

// CallObserver receives per-call timing for scheduler round trips.
type CallObserver interface {
	ObserveSchedulerCall(endpoint string, duration time.Duration, err error)
}

// HTTPClient talks to the online scheduler API. Every call is a fresh
// synchronous fetch: there is no cache in front of the scheduler, so a failed
// call always propagates instead of serving stale data.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
	metrics CallObserver
}

// NewHTTPClient constructs the scheduler client from configuration.
func NewHTTPClient(cfg config.SchedulerConfig, logger *zap.Logger) *HTTPClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// SetMetrics attaches an optional call observer.
func (c *HTTPClient) SetMetrics(obs CallObserver) {
	c.metrics = obs
}

// ListActiveStudents fetches every active student, including those with
// duplicate display names.
func (c *HTTPClient) ListActiveStudents(ctx context.Context) ([]Student, error) {
	var students []Student
	if err := c.getJSON(ctx, "/students/all-active", nil, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// ListActiveAssignments fetches the recurring assignment entries with their
// teacher and time-slot joins.
func (c *HTTPClient) ListActiveAssignments(ctx context.Context) ([]Assignment, error) {
	var assignments []Assignment
	if err := c.getJSON(ctx, "/assignments/active", nil, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// ListAssignmentsInRange fetches dated class occurrences starting at startDate
// for daysCount days.
func (c *HTTPClient) ListAssignmentsInRange(ctx context.Context, startDate string, daysCount int) ([]Occurrence, error) {
	params := url.Values{}
	params.Set("startDate", startDate)
	params.Set("daysCount", strconv.Itoa(daysCount))
	var occurrences []Occurrence
	if err := c.getJSON(ctx, "/assignments/date-range", params, &occurrences); err != nil {
		return nil, err
	}
	return occurrences, nil
}

// ListActiveTeachers fetches the active teacher roster.
func (c *HTTPClient) ListActiveTeachers(ctx context.Context) ([]models.Teacher, error) {
	var teachers []models.Teacher
	if err := c.getJSON(ctx, "/teachers/active", nil, &teachers); err != nil {
		return nil, err
	}
	return teachers, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, params url.Values, out interface{}) (err error) {
	if c.metrics != nil {
		start := time.Now()
		defer func() {
			c.metrics.ObserveSchedulerCall(path, time.Since(start), err)
		}()
	}

	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build scheduler request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("scheduler request failed", zap.String("path", path), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("scheduler returned non-OK status", zap.String("path", path), zap.Int("status", resp.StatusCode))
		return appErrors.Wrap(
			fmt.Errorf("scheduler responded %d", resp.StatusCode),
			appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message,
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "malformed scheduler response")
	}
	return nil
}
