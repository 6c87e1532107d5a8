package models

// StudentClassCount is one (student, subject) leaf in the class-count tree.
// JSON keys are camelCase to match the range-count consumer.
type StudentClassCount struct {
	StudentID   int64   `json:"studentId"`
	StudentName string  `json:"studentName"`
	Subject     Subject `json:"subject"`
	ClassCount  int     `json:"classCount"`
}

// TeacherClassCount groups a teacher's students for a date range. TeacherID is
// nil for the unknown-teacher bucket.
type TeacherClassCount struct {
	TeacherID    *int64              `json:"teacherId"`
	TeacherName  string              `json:"teacherName"`
	TotalClasses int                 `json:"totalClasses"`
	Students     []StudentClassCount `json:"students"`
}

// ClassCountReport is the full grouped tree for a date range.
type ClassCountReport struct {
	Teachers []TeacherClassCount `json:"teachers"`
}

// UnknownTeacherName labels attendance that no assignment in the range can
// attribute to a teacher. Such records are bucketed, never dropped.
const UnknownTeacherName = "Unknown Teacher"
