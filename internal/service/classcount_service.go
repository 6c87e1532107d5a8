package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/hanbit-edu/tutoring-ledger-api/internal/models"
	"github.com/hanbit-edu/tutoring-ledger-api/internal/scheduler"
	appErrors "github.com/hanbit-edu/tutoring-ledger-api/pkg/errors"
)

type statusRangeLister interface {
	ListByStatusInRange(ctx context.Context, from, to string, statuses []models.AttendanceStatus) ([]models.AttendanceRecord, error)
}

type occurrenceSource interface {
	ListActiveStudents(ctx context.Context) ([]scheduler.Student, error)
	ListAssignmentsInRange(ctx context.Context, startDate string, daysCount int) ([]scheduler.Occurrence, error)
}

// ClassCountService groups a date range's attendance by teacher. Attribution
// uses the scheduler's dated occurrences for the same range, so a record
// counts toward whoever actually taught that day, not the current assignment.
type ClassCountService struct {
	attendance statusRangeLister
	scheduler  occurrenceSource
	metrics    *MetricsService
	logger     *zap.Logger
}

// NewClassCountService constructs ClassCountService. metrics may be nil.
func NewClassCountService(attendance statusRangeLister, sched occurrenceSource, metrics *MetricsService, logger *zap.Logger) *ClassCountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassCountService{attendance: attendance, scheduler: sched, metrics: metrics, logger: logger}
}

// CountRange builds the teacher-grouped class-count tree for [start, end].
// statuses defaults to every status; teacherFilter, when non-empty, keeps only
// the named teacher's bucket. Records with no resolvable teacher land in the
// unknown bucket, never dropped: every matching record appears exactly once.
func (s *ClassCountService) CountRange(ctx context.Context, start, end string, statuses []models.AttendanceStatus, teacherFilter string) (*models.ClassCountReport, error) {
	if start == "" || end == "" || start > end {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start and end dates are required and must be ordered")
	}
	if len(statuses) == 0 {
		statuses = []models.AttendanceStatus{
			models.AttendanceStatusPresent,
			models.AttendanceStatusAbsent,
			models.AttendanceStatusTA,
			models.AttendanceStatusNoShow,
		}
	}
	for _, status := range statuses {
		if !status.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown attendance status")
		}
	}

	queryStart := time.Now()
	records, err := s.attendance.ListByStatusInRange(ctx, start, end, statuses)
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("classcount_range", time.Since(queryStart))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}

	days, err := rangeDayCount(start, end)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "dates must be YYYY-MM-DD")
	}
	occurrences, err := s.scheduler.ListAssignmentsInRange(ctx, start, days)
	if err != nil {
		return nil, err
	}
	students, err := s.scheduler.ListActiveStudents(ctx)
	if err != nil {
		return nil, err
	}
	studentNames := make(map[int64]string, len(students))
	for _, st := range students {
		name, _ := models.SplitDisplayName(st.Name)
		studentNames[st.ID] = name
	}

	// (date, student) -> teacher. When an occurrence lists several teachers
	// the first by name wins, so attribution is deterministic.
	teacherByCell := map[string]scheduler.Participant{}
	for _, occ := range occurrences {
		if !occ.Active || len(occ.Teachers) == 0 {
			continue
		}
		teachers := append([]scheduler.Participant(nil), occ.Teachers...)
		sort.SliceStable(teachers, func(i, j int) bool { return teachers[i].Name < teachers[j].Name })
		for _, student := range occ.Students {
			cell := fmt.Sprintf("%s|%d", occ.Date, student.ID)
			if _, taken := teacherByCell[cell]; !taken {
				teacherByCell[cell] = teachers[0]
			}
		}
	}

	type teacherBucket struct {
		id       *int64
		name     string
		total    int
		students map[string]*models.StudentClassCount
	}
	buckets := map[string]*teacherBucket{}

	for _, record := range records {
		teacherName := models.UnknownTeacherName
		var teacherID *int64
		if teacher, ok := teacherByCell[fmt.Sprintf("%s|%d", record.Date, record.StudentID)]; ok {
			teacherName = teacher.Name
			id := teacher.ID
			teacherID = &id
		}
		bucket, ok := buckets[teacherName]
		if !ok {
			bucket = &teacherBucket{id: teacherID, name: teacherName, students: map[string]*models.StudentClassCount{}}
			buckets[teacherName] = bucket
		}
		bucket.total++

		leafKey := models.RowKey(record.StudentID, record.Subject)
		leaf, ok := bucket.students[leafKey]
		if !ok {
			studentName := studentNames[record.StudentID]
			if studentName == "" {
				studentName = fmt.Sprintf("Student %d", record.StudentID)
			}
			leaf = &models.StudentClassCount{
				StudentID:   record.StudentID,
				StudentName: studentName,
				Subject:     record.Subject,
			}
			bucket.students[leafKey] = leaf
		}
		leaf.ClassCount++
	}

	report := &models.ClassCountReport{Teachers: []models.TeacherClassCount{}}
	for _, bucket := range buckets {
		if teacherFilter != "" && bucket.name != teacherFilter {
			continue
		}
		entry := models.TeacherClassCount{
			TeacherID:    bucket.id,
			TeacherName:  bucket.name,
			TotalClasses: bucket.total,
			Students:     make([]models.StudentClassCount, 0, len(bucket.students)),
		}
		for _, leaf := range bucket.students {
			entry.Students = append(entry.Students, *leaf)
		}
		sort.SliceStable(entry.Students, func(i, j int) bool {
			if entry.Students[i].StudentName != entry.Students[j].StudentName {
				return entry.Students[i].StudentName < entry.Students[j].StudentName
			}
			return entry.Students[i].Subject.Sort() < entry.Students[j].Subject.Sort()
		})
		report.Teachers = append(report.Teachers, entry)
	}

	// Named teachers alphabetically, the unknown bucket last.
	sort.SliceStable(report.Teachers, func(i, j int) bool {
		iUnknown := report.Teachers[i].TeacherName == models.UnknownTeacherName
		jUnknown := report.Teachers[j].TeacherName == models.UnknownTeacherName
		if iUnknown != jUnknown {
			return jUnknown
		}
		return report.Teachers[i].TeacherName < report.Teachers[j].TeacherName
	})
	return report, nil
}

// rangeDayCount returns the inclusive number of days between two YYYY-MM-DD
// dates, which is what the scheduler's date-range endpoint expects.
func rangeDayCount(start, end string) (int, error) {
	from, err := time.Parse("2006-01-02", start)
	if err != nil {
		return 0, err
	}
	to, err := time.Parse("2006-01-02", end)
	if err != nil {
		return 0, err
	}
	return int(to.Sub(from).Hours()/24) + 1, nil
}
