package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"reflect"
	"testing"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/timesheet"
)

type stubTimesheetService struct {
	timesheet.Service

	listResp   timesheet.ListTimesheetResponse
	listErr    error
	lastFilter timesheet.TimesheetFilter
}

func (s *stubTimesheetService) List(ctx context.Context, companyID string, filter timesheet.TimesheetFilter) (timesheet.ListTimesheetResponse, error) {
	s.lastFilter = filter
	return s.listResp, s.listErr
}

func strPtr(s string) *string { return &s }

func sampleRows() timesheet.ListTimesheetResponse {
	return timesheet.ListTimesheetResponse{
		TotalCount: 2,
		Timesheets: []timesheet.TimesheetResponse{
			{
				ID:            "ts-1",
				EmployeeName:  strPtr("Ana Prasetyo"),
				EmployeeEmail: strPtr("ana@example.com"),
				PeriodStart:   "2025-03-01",
				PeriodEnd:     "2025-03-31",
				Totals:        timesheet.Totals{DaysWorked: 21},
				Hours: timesheet.HoursTotals{
					RegularHours:  160,
					OvertimeHours: 4.5,
					TotalHours:    164.5,
				},
				Status:     "approved",
				ApprovedAt: strPtr("2025-04-02T10:00:00Z"),
				Notes:      strPtr("checked against roster"),
			},
			{
				ID:          "ts-2",
				PeriodStart: "2025-03-01",
				PeriodEnd:   "2025-03-31",
				Status:      "draft",
			},
		},
	}
}

func parseCSV(t *testing.T, content []byte) [][]string {
	t.Helper()
	rows, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse csv output: %v", err)
	}
	return rows
}

func TestExportCSVFieldSelectionAndOrder(t *testing.T) {
	stub := &stubTimesheetService{listResp: sampleRows()}
	svc := NewExportService(stub, nil)

	result, err := svc.Export(context.Background(), "co-1", Request{
		Format: FormatCSV,
		Fields: []string{FieldStatus, FieldUserName, FieldTotalHours},
	})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if result.ContentType != "text/csv" {
		t.Errorf("content type = %q, want text/csv", result.ContentType)
	}
	if result.Filename != "timesheets.csv" {
		t.Errorf("filename = %q, want timesheets.csv", result.Filename)
	}

	rows := parseCSV(t, result.Content)
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	wantHeader := []string{"status", "user_name", "total_hours"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Errorf("header = %v, want %v", rows[0], wantHeader)
	}
	wantFirst := []string{"approved", "Ana Prasetyo", "164.5"}
	if !reflect.DeepEqual(rows[1], wantFirst) {
		t.Errorf("first row = %v, want %v", rows[1], wantFirst)
	}
	// Missing optional values render as empty strings.
	wantSecond := []string{"draft", "", "0"}
	if !reflect.DeepEqual(rows[2], wantSecond) {
		t.Errorf("second row = %v, want %v", rows[2], wantSecond)
	}
}

func TestExportDefaultsToAllFields(t *testing.T) {
	stub := &stubTimesheetService{listResp: sampleRows()}
	svc := NewExportService(stub, nil)

	result, err := svc.Export(context.Background(), "co-1", Request{Format: FormatCSV})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	rows := parseCSV(t, result.Content)
	if !reflect.DeepEqual(rows[0], AllFields) {
		t.Errorf("header = %v, want all fields %v", rows[0], AllFields)
	}
}

func TestExportConfiguredDefaultFields(t *testing.T) {
	stub := &stubTimesheetService{listResp: sampleRows()}
	svc := NewExportService(stub, []string{FieldUserEmail, FieldRegularHours})

	result, err := svc.Export(context.Background(), "co-1", Request{Format: FormatCSV})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	rows := parseCSV(t, result.Content)
	wantHeader := []string{"user_email", "regular_hours"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Errorf("header = %v, want %v", rows[0], wantHeader)
	}
}

func TestExportUnknownField(t *testing.T) {
	stub := &stubTimesheetService{listResp: sampleRows()}
	svc := NewExportService(stub, nil)

	_, err := svc.Export(context.Background(), "co-1", Request{
		Format: FormatCSV,
		Fields: []string{FieldStatus, "salary"},
	})
	if !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	stub := &stubTimesheetService{listResp: sampleRows()}
	svc := NewExportService(stub, nil)

	_, err := svc.Export(context.Background(), "co-1", Request{Format: "pdf"})
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestExportXLSXProducesWorkbook(t *testing.T) {
	stub := &stubTimesheetService{listResp: sampleRows()}
	svc := NewExportService(stub, nil)

	result, err := svc.Export(context.Background(), "co-1", Request{
		Format: FormatXLSX,
		Fields: []string{FieldUserName, FieldStatus},
	})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if result.Filename != "timesheets.xlsx" {
		t.Errorf("filename = %q, want timesheets.xlsx", result.Filename)
	}
	// XLSX files are zip archives.
	if len(result.Content) < 4 || result.Content[0] != 'P' || result.Content[1] != 'K' {
		t.Errorf("content does not look like an xlsx archive")
	}
}

func TestExportPeriodColumn(t *testing.T) {
	stub := &stubTimesheetService{listResp: sampleRows()}
	svc := NewExportService(stub, nil)

	result, err := svc.Export(context.Background(), "co-1", Request{
		Format: FormatCSV,
		Fields: []string{FieldPeriod},
	})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	rows := parseCSV(t, result.Content)
	if rows[1][0] != "2025-03-01 - 2025-03-31" {
		t.Errorf("period = %q, want %q", rows[1][0], "2025-03-01 - 2025-03-31")
	}
}

func TestExportPassesFilterUnpaginated(t *testing.T) {
	stub := &stubTimesheetService{listResp: sampleRows()}
	svc := NewExportService(stub, nil)

	status := "approved"
	_, err := svc.Export(context.Background(), "co-1", Request{
		Format: FormatCSV,
		Filter: timesheet.TimesheetFilter{Status: &status},
	})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if stub.lastFilter.Status == nil || *stub.lastFilter.Status != "approved" {
		t.Errorf("status filter not forwarded: %+v", stub.lastFilter)
	}
	if stub.lastFilter.Page != 1 || stub.lastFilter.Limit != 10000 {
		t.Errorf("expected unpaginated pull, got page=%d limit=%d", stub.lastFilter.Page, stub.lastFilter.Limit)
	}
}

func TestParseFields(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"single", "status", []string{"status"}},
		{"trims spaces", " user_name , status ", []string{"user_name", "status"}},
		{"drops empty parts", "status,,notes", []string{"status", "notes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFields(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseFields(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
