package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/complykit/filingreview/internal/core/domain"
)

// Service produces XLSX bytes for compliance reports so reviewers can hand
// the issue list around outside the API.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ReportXLSX returns a workbook with a summary sheet and the full issue
// list, one finding per row, in report order.
func (s *Service) ReportXLSX(report *domain.ComplianceReport) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const summarySheet = "Summary"
	const issuesSheet = "Issues"

	defaultSheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(defaultSheet, summarySheet); err != nil {
		return nil, fmt.Errorf("rename summary sheet: %w", err)
	}
	if _, err := f.NewSheet(issuesSheet); err != nil {
		return nil, fmt.Errorf("create issues sheet: %w", err)
	}

	summary := [][]any{
		{"Process Type", report.ProcessType},
		{"Documents Uploaded", report.TotalDocuments},
		{"Required Documents", report.RequiredDocuments},
		{"Missing Documents", len(report.MissingDocuments)},
		{"Issues", len(report.Issues)},
		{"Compliance Score", report.ComplianceScore},
	}
	for i, row := range summary {
		for j, v := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			_ = f.SetCellValue(summarySheet, cell, v)
		}
	}
	missingRow := len(summary) + 2
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", missingRow), "Missing:")
	for i, missing := range report.MissingDocuments {
		cell, _ := excelize.CoordinatesToCellName(2, missingRow+i)
		_ = f.SetCellValue(summarySheet, cell, string(missing))
	}

	headers := []string{"Document", "Section", "Severity", "Description", "Suggestion", "Reference"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(issuesSheet, cell, h)
	}
	for i, issue := range report.Issues {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(issuesSheet, cell, v)
		}
		write(1, issue.Document)
		write(2, issue.Section)
		write(3, string(issue.Severity))
		write(4, issue.Description)
		write(5, issue.Suggestion)
		write(6, issue.Reference)
	}

	_ = f.SetColWidth(issuesSheet, "A", "A", 28)
	_ = f.SetColWidth(issuesSheet, "B", "B", 20)
	_ = f.SetColWidth(issuesSheet, "C", "C", 10)
	_ = f.SetColWidth(issuesSheet, "D", "E", 48)
	_ = f.SetColWidth(issuesSheet, "F", "F", 32)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"process_type", report.ProcessType,
		"issues", len(report.Issues),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
