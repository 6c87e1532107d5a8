package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/hanbit-edu/tutoring-ledger-api/internal/models"
	appErrors "github.com/hanbit-edu/tutoring-ledger-api/pkg/errors"
	"github.com/hanbit-edu/tutoring-ledger-api/pkg/export"
)

type tuitionComputer interface {
	ComputeTuition(ctx context.Context, year, month int) ([]models.BillingRow, error)
}

type commissionComputer interface {
	ComputeCommissions(ctx context.Context, year, month int) ([]models.CommissionRow, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders the monthly tuition and commission tables to CSV or
// PDF downloads.
type ExportService struct {
	billing    tuitionComputer
	commission commissionComputer
	csv        csvRenderer
	pdf        pdfRenderer
	logger     *zap.Logger
}

// NewExportService constructs ExportService.
func NewExportService(billing tuitionComputer, commission commissionComputer, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{billing: billing, commission: commission, csv: csv, pdf: pdf, logger: logger}
}

// Tuition renders the month's tuition table in the requested format.
func (s *ExportService) Tuition(ctx context.Context, year, month int, format string) (*ExportFile, error) {
	rows, err := s.billing.ComputeTuition(ctx, year, month)
	if err != nil {
		return nil, err
	}
	headers := []string{"Student", "Subject", "Teacher", "Price/Class", "Currency", "Present", "Total", "Paid", "Payment Date"}
	dataset := export.Dataset{Headers: headers}
	for _, row := range rows {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Student":      row.Name,
			"Subject":      subjectOrDash(row.Subject),
			"Teacher":      stringOrDash(row.TeacherName),
			"Price/Class":  strconv.FormatFloat(row.PricePerClass, 'f', 2, 64),
			"Currency":     string(row.Currency),
			"Present":      strconv.Itoa(row.PresentCount),
			"Total":        strconv.FormatFloat(row.TotalTuition, 'f', 2, 64),
			"Paid":         yesNo(row.Paid),
			"Payment Date": stringOrDash(row.PaymentDate),
		})
	}
	title := fmt.Sprintf("Tuition %04d-%02d", year, month)
	return s.render(dataset, title, fmt.Sprintf("tuition-%04d-%02d", year, month), format)
}

// Commission renders the month's commission table in the requested format.
func (s *ExportService) Commission(ctx context.Context, year, month int, format string) (*ExportFile, error) {
	rows, err := s.commission.ComputeCommissions(ctx, year, month)
	if err != nil {
		return nil, err
	}
	headers := []string{"Teacher", "Student", "Rate/Class", "Currency", "Classes", "Total", "Paid", "Payment Date"}
	dataset := export.Dataset{Headers: headers}
	for _, row := range rows {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Teacher":      row.TeacherName,
			"Student":      row.StudentName,
			"Rate/Class":   strconv.FormatFloat(row.CommissionPerClass, 'f', 2, 64),
			"Currency":     string(row.Currency),
			"Classes":      strconv.Itoa(row.ClassCount),
			"Total":        strconv.FormatFloat(row.TotalCommission, 'f', 2, 64),
			"Paid":         yesNo(row.Paid),
			"Payment Date": stringOrDash(row.PaymentDate),
		})
	}
	title := fmt.Sprintf("Commission %04d-%02d", year, month)
	return s.render(dataset, title, fmt.Sprintf("commission-%04d-%02d", year, month), format)
}

func (s *ExportService) render(dataset export.Dataset, title, basename, format string) (*ExportFile, error) {
	switch format {
	case "", "csv":
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportFile{Filename: basename + ".csv", ContentType: "text/csv", Data: data}, nil
	case "pdf":
		data, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportFile{Filename: basename + ".pdf", ContentType: "application/pdf", Data: data}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func stringOrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

// subjectOrDash keeps the storage key for the absent subject out of downloads.
func subjectOrDash(s models.Subject) string {
	if !s.Valid {
		return "-"
	}
	return s.Name
}
