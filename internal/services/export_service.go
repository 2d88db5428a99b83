package services

import (
	"bytes"
	"fmt"

	"github.com/alimgiray/contribution-analyzer/internal/models"
	"github.com/xuri/excelize/v2"
)

// ContributorsSheet is the worksheet name used by the XLSX export
const ContributorsSheet = "Contributors"

// ExportService renders scoring results as spreadsheets
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// ExportHeaders returns the header row of the contributors sheet
func ExportHeaders() []string {
	headers := []string{"Username", "Avatar", "Commits", "Additions", "Deletions"}
	for _, t := range models.AllChangeTypes {
		headers = append(headers, string(t))
	}
	return append(headers, "Score")
}

// ExportXLSX writes one row per contributor, in the order given
func (s *ExportService) ExportXLSX(stats []models.ContributorStats) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ContributorsSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := setRow(f, 1, toCells(ExportHeaders())); err != nil {
		return nil, err
	}

	for i, contributor := range stats {
		row := []interface{}{
			contributor.Username,
			contributor.Avatar,
			contributor.Commits,
			contributor.Additions,
			contributor.Deletions,
		}
		for _, t := range models.AllChangeTypes {
			row = append(row, contributor.Breakdown[t])
		}
		row = append(row, contributor.Score)

		if err := setRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

func setRow(f *excelize.File, rowNumber int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNumber)
	if err != nil {
		return fmt.Errorf("invalid row %d: %w", rowNumber, err)
	}
	if err := f.SetSheetRow(ContributorsSheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNumber, err)
	}
	return nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
