package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/hanbit-edu/tutoring-ledger-api/internal/models"
	"github.com/hanbit-edu/tutoring-ledger-api/internal/scheduler"
	appErrors "github.com/hanbit-edu/tutoring-ledger-api/pkg/errors"
)

type hiddenLister interface {
	List(ctx context.Context) ([]models.HiddenRow, error)
}

type pricingLister interface {
	ListAll(ctx context.Context) ([]models.PricingRecord, error)
}

// RosterService resolves the derived student-subject roster from the live
// scheduler joined with locally stored pricing and hidden rows. Nothing here
// is persisted; every call re-fetches from the scheduler.
type RosterService struct {
	scheduler scheduler.Client
	hidden    hiddenLister
	pricing   pricingLister
	logger    *zap.Logger
}

// NewRosterService constructs RosterService.
func NewRosterService(sched scheduler.Client, hidden hiddenLister, pricing pricingLister, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{scheduler: sched, hidden: hidden, pricing: pricing, logger: logger}
}

type subjectGroup struct {
	subject   models.Subject
	teacher   *string
	schedules []models.ScheduleEntry
	source    models.RowSource
}

// Resolve returns the ordered roster. asOf selects the billing period the
// hide window is evaluated against; nil keeps the legacy behavior where any
// hidden row is suppressed unconditionally.
func (s *RosterService) Resolve(ctx context.Context, asOf *models.YearMonth) ([]models.StudentSubjectRow, error) {
	students, err := s.scheduler.ListActiveStudents(ctx)
	if err != nil {
		return nil, err
	}
	assignments, err := s.scheduler.ListActiveAssignments(ctx)
	if err != nil {
		return nil, err
	}
	hidden, err := s.hidden.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load hidden rows")
	}
	pricing, err := s.pricing.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load pricing records")
	}

	groups := make(map[int64][]*subjectGroup)

	findGroup := func(studentID int64, subject models.Subject) *subjectGroup {
		for _, g := range groups[studentID] {
			if g.subject.Equal(subject) {
				return g
			}
		}
		return nil
	}

	for _, a := range assignments {
		if !a.Active {
			continue
		}
		entry := models.ScheduleEntry{
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
			Days:      models.WeekdayLetters(a.Weekdays),
		}
		g := findGroup(a.StudentID, a.Subject)
		if g == nil {
			g = &subjectGroup{subject: a.Subject, teacher: a.TeacherName, source: models.RowSourceScheduled}
			groups[a.StudentID] = append(groups[a.StudentID], g)
		}
		if g.teacher == nil {
			g.teacher = a.TeacherName
		}
		if entry.StartTime != "" && entry.Days != "" && !containsEntry(g.schedules, entry) {
			g.schedules = append(g.schedules, entry)
		}
	}

	for studentID := range groups {
		for _, g := range groups[studentID] {
			g.schedules = mergeContiguous(g.schedules)
			for i := range g.schedules {
				g.schedules[i].FormatTimeRange()
			}
		}
	}

	// Manually priced subjects become schedule-less rows unless a live
	// assignment already covers the pair.
	for _, p := range pricing {
		subject := subjectFromKey(p.Subject)
		if findGroup(p.StudentID, subject) != nil {
			continue
		}
		groups[p.StudentID] = append(groups[p.StudentID], &subjectGroup{
			subject: subject,
			source:  models.RowSourceManual,
		})
	}

	rows := make([]models.StudentSubjectRow, 0, len(students))
	for _, student := range students {
		if !student.Active {
			continue
		}
		name, localized := models.SplitDisplayName(student.Name)
		if localized == nil {
			localized = student.LocalizedName
		}
		studentGroups := groups[student.ID]
		if len(studentGroups) == 0 {
			studentGroups = []*subjectGroup{{subject: models.NoSubject(), source: models.RowSourceScheduled}}
		}
		for _, g := range studentGroups {
			rows = append(rows, models.StudentSubjectRow{
				StudentID:     student.ID,
				Name:          name,
				LocalizedName: localized,
				SecondaryName: student.SecondaryName,
				TeacherName:   g.teacher,
				Schedules:     g.schedules,
				Subject:       g.subject,
				Source:        g.source,
				RowKey:        models.RowKey(student.ID, g.subject),
			})
		}
	}

	visible := rows[:0]
	for _, row := range rows {
		suppressed := false
		for _, h := range hidden {
			if h.StudentID == row.StudentID && h.Subject.Equal(row.Subject) && h.HidesFrom(asOf) {
				suppressed = true
				break
			}
		}
		if !suppressed {
			visible = append(visible, row)
		}
	}

	sort.SliceStable(visible, func(i, j int) bool {
		if visible[i].Name != visible[j].Name {
			return visible[i].Name < visible[j].Name
		}
		return visible[i].Subject.Sort() < visible[j].Subject.Sort()
	})
	return visible, nil
}

func containsEntry(entries []models.ScheduleEntry, candidate models.ScheduleEntry) bool {
	for _, e := range entries {
		if e.Days == candidate.Days && e.StartTime == candidate.StartTime && e.EndTime == candidate.EndTime {
			return true
		}
	}
	return false
}

// mergeContiguous coalesces back-to-back slots on the identical weekday set.
// It is a single left-to-right pass over the sorted entries, adjacent-only:
// 7:00-7:30 + 7:30-8:00 on MWF becomes 7:00-8:00 MWF, overlapping slots stay
// separate.
func mergeContiguous(entries []models.ScheduleEntry) []models.ScheduleEntry {
	if len(entries) < 2 {
		return entries
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Days != entries[j].Days {
			return entries[i].Days < entries[j].Days
		}
		return entries[i].StartTime < entries[j].StartTime
	})
	merged := []models.ScheduleEntry{entries[0]}
	for _, e := range entries[1:] {
		last := &merged[len(merged)-1]
		if last.Days == e.Days && last.EndTime == e.StartTime {
			last.EndTime = e.EndTime
			continue
		}
		merged = append(merged, e)
	}
	return merged
}

// subjectFromKey maps a stored subject key back to the optional value. The
// pricing and payment stores key the subject-less row as "default", mirroring
// the row key scheme.
func subjectFromKey(key string) models.Subject {
	if key == "" || key == "default" {
		return models.NoSubject()
	}
	return models.NewSubject(key)
}
