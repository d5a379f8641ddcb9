package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/timesheet"
)

// Format identifies the output encoding of an export.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Field names selectable in an export, in their canonical order.
const (
	FieldUserEmail     = "user_email"
	FieldUserName      = "user_name"
	FieldPeriod        = "period"
	FieldRegularHours  = "regular_hours"
	FieldOvertimeHours = "overtime_hours"
	FieldBreakHours    = "break_hours"
	FieldTotalHours    = "total_hours"
	FieldPlannedHours  = "planned_hours"
	FieldVarianceHours = "variance_hours"
	FieldDaysWorked    = "days_worked"
	FieldStatus        = "status"
	FieldApprovedAt    = "approved_at"
	FieldNotes         = "notes"
)

// AllFields is the full selectable field set in default column order.
var AllFields = []string{
	FieldUserEmail, FieldUserName, FieldPeriod,
	FieldRegularHours, FieldOvertimeHours, FieldBreakHours, FieldTotalHours,
	FieldPlannedHours, FieldVarianceHours, FieldDaysWorked,
	FieldStatus, FieldApprovedAt, FieldNotes,
}

var (
	ErrUnknownField  = fmt.Errorf("unknown export field")
	ErrUnknownFormat = fmt.Errorf("unknown export format")
)

// Request selects the rows and columns of one export run. An empty
// Fields list falls back to the configured defaults.
type Request struct {
	Filter timesheet.TimesheetFilter
	Format Format
	Fields []string
}

// Result carries the rendered document.
type Result struct {
	Content     []byte
	ContentType string
	Filename    string
}

// Service renders timesheet exports.
type Service interface {
	Export(ctx context.Context, companyID string, req Request) (Result, error)
}

type ServiceImpl struct {
	timesheetSvc  timesheet.Service
	defaultFields []string
}

func NewExportService(timesheetSvc timesheet.Service, defaultFields []string) Service {
	if len(defaultFields) == 0 {
		defaultFields = AllFields
	}
	return &ServiceImpl{
		timesheetSvc:  timesheetSvc,
		defaultFields: defaultFields,
	}
}

// Export implements Service: one row per timesheet, columns in the order
// the caller selected fields.
func (s *ServiceImpl) Export(ctx context.Context, companyID string, req Request) (Result, error) {
	fields := req.Fields
	if len(fields) == 0 {
		fields = s.defaultFields
	}
	for _, f := range fields {
		if !isKnownField(f) {
			return Result{}, fmt.Errorf("%w: %q", ErrUnknownField, f)
		}
	}

	// Pull everything matching the filter, unpaginated.
	filter := req.Filter
	filter.Page = 1
	filter.Limit = 10000

	list, err := s.timesheetSvc.List(ctx, companyID, filter)
	if err != nil {
		return Result{}, fmt.Errorf("failed to list timesheets for export: %w", err)
	}

	rows := make([][]string, 0, len(list.Timesheets)+1)
	rows = append(rows, fields)
	for _, ts := range list.Timesheets {
		row := make([]string, 0, len(fields))
		for _, f := range fields {
			row = append(row, fieldValue(ts, f))
		}
		rows = append(rows, row)
	}

	switch req.Format {
	case FormatCSV, "":
		content, err := renderCSV(rows)
		if err != nil {
			return Result{}, err
		}
		return Result{
			Content:     content,
			ContentType: "text/csv",
			Filename:    "timesheets.csv",
		}, nil
	case FormatXLSX:
		content, err := renderXLSX(rows)
		if err != nil {
			return Result{}, err
		}
		return Result{
			Content:     content,
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Filename:    "timesheets.xlsx",
		}, nil
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownFormat, req.Format)
	}
}

func renderCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func renderXLSX(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Timesheets"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell name: %w", err)
		}
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func isKnownField(f string) bool {
	for _, known := range AllFields {
		if f == known {
			return true
		}
	}
	return false
}

// ParseFields splits a comma list of field names as supplied by the
// fields query parameter or EXPORT_DEFAULT_FIELDS.
func ParseFields(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			fields = append(fields, trimmed)
		}
	}
	return fields
}

func fieldValue(ts timesheet.TimesheetResponse, field string) string {
	switch field {
	case FieldUserEmail:
		return deref(ts.EmployeeEmail)
	case FieldUserName:
		return deref(ts.EmployeeName)
	case FieldPeriod:
		return ts.PeriodStart + " - " + ts.PeriodEnd
	case FieldRegularHours:
		return formatHours(ts.Hours.RegularHours)
	case FieldOvertimeHours:
		return formatHours(ts.Hours.OvertimeHours)
	case FieldBreakHours:
		return formatHours(ts.Hours.BreakHours)
	case FieldTotalHours:
		return formatHours(ts.Hours.TotalHours)
	case FieldPlannedHours:
		return formatHours(ts.Hours.PlannedHours)
	case FieldVarianceHours:
		return formatHours(ts.Hours.VarianceHours)
	case FieldDaysWorked:
		return strconv.Itoa(ts.Totals.DaysWorked)
	case FieldStatus:
		return ts.Status
	case FieldApprovedAt:
		return deref(ts.ApprovedAt)
	case FieldNotes:
		return deref(ts.Notes)
	default:
		return ""
	}
}

func formatHours(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
