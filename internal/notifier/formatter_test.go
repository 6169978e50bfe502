package notifier

import (
	"strings"
	"testing"
	"time"

	"FilingSentinel/internal/model"
)

var reportTime = time.Date(2025, 8, 31, 13, 0, 5, 0, time.UTC)

func TestFormatDailyReport_Header(t *testing.T) {
	got := FormatDailyReport(nil, reportTime, 5)
	lines := strings.Split(got, "\n")
	if len(lines) < 3 {
		t.Fatalf("expected at least 3 header lines, got %d", len(lines))
	}
	if lines[0] != "Daily 13D/13G Ownership Snapshot" {
		t.Errorf("unexpected title: %q", lines[0])
	}
	if lines[1] != "Date (UTC): 2025-08-31 13:00:05" {
		t.Errorf("unexpected date line: %q", lines[1])
	}
	if lines[2] != "Showing up to 5 latest filings per fund" {
		t.Errorf("unexpected cap line: %q", lines[2])
	}
}

func TestFormatDailyReport_Deterministic(t *testing.T) {
	reports := []model.FilerReport{
		{
			Filer: model.Filer{Name: "Starboard Value", CIK: "1517137"},
			Filings: []model.Filing{
				{Form: "SC 13D", FiledDate: "2025-08-20", Issuer: "Alpha Corp", PercentOwned: ptr(8.3)},
			},
		},
	}
	a := FormatDailyReport(reports, reportTime, 5)
	b := FormatDailyReport(reports, reportTime, 5)
	if a != b {
		t.Error("identical inputs produced different report text")
	}
}

func TestFormatDailyReport_FilerBlock(t *testing.T) {
	reports := []model.FilerReport{
		{
			Filer: model.Filer{Name: "Elliott", CIK: "1791786"},
			Filings: []model.Filing{
				{Form: "SC 13D", FiledDate: "2025-08-20", Issuer: "Alpha Corp", PercentOwned: ptr(8.3)},
				{Form: "SC 13G", FiledDate: "2025-07-01", Issuer: "Beta Inc"},
			},
		},
	}
	got := FormatDailyReport(reports, reportTime, 5)

	if !strings.Contains(got, "Elliott (CIK 1791786)") {
		t.Error("missing filer header line")
	}
	if !strings.Contains(got, strings.Repeat("=", 70)) {
		t.Error("missing separator line")
	}
	if !strings.Contains(got, "Date       | Issuer                               | % owned") {
		t.Error("missing column header row")
	}
	if !strings.Contains(got, "2025-08-20 | Alpha Corp                          | 8.3%") {
		t.Errorf("missing formatted filing row, report:\n%s", got)
	}
	if !strings.Contains(got, "2025-07-01 | Beta Inc                            | N/A") {
		t.Errorf("missing N/A row for filing without percent, report:\n%s", got)
	}
}

func TestFormatDailyReport_TruncatesLongIssuer(t *testing.T) {
	issuer := "ACME Holdings Corporation International"
	reports := []model.FilerReport{
		{
			Filer: model.Filer{Name: "Citadel", CIK: "1423053"},
			Filings: []model.Filing{
				{Form: "SC 13G", FiledDate: "2025-08-01", Issuer: issuer, PercentOwned: ptr(5.0)},
			},
		},
	}
	got := FormatDailyReport(reports, reportTime, 5)

	want := issuer[:32] + "..."
	if !strings.Contains(got, want) {
		t.Errorf("expected truncated issuer %q in report:\n%s", want, got)
	}
	if strings.Contains(got, issuer) {
		t.Error("full overlong issuer name should not appear")
	}
}

func TestFormatDailyReport_NoFilingsPlaceholder(t *testing.T) {
	reports := []model.FilerReport{
		{Filer: model.Filer{Name: "Jane Street", CIK: "1595888"}},
	}
	got := FormatDailyReport(reports, reportTime, 5)

	if !strings.Contains(got, "No 13D/13G filings in the lookback window.") {
		t.Errorf("missing no-filings placeholder, report:\n%s", got)
	}
	rows := 0
	for _, line := range strings.Split(got, "\n") {
		if strings.Contains(line, " | ") {
			rows++
		}
	}
	if rows != 1 { // only the column header row
		t.Errorf("expected no table rows for empty filer, got %d '|' lines", rows)
	}
}

func TestFormatDailyReport_PreservesFilerOrder(t *testing.T) {
	reports := []model.FilerReport{
		{Filer: model.Filer{Name: "Renaissance", CIK: "1037389"}},
		{Filer: model.Filer{Name: "Millennium", CIK: "1273087"}},
	}
	got := FormatDailyReport(reports, reportTime, 5)

	first := strings.Index(got, "Renaissance")
	second := strings.Index(got, "Millennium")
	if first == -1 || second == -1 || first > second {
		t.Errorf("filer blocks out of order: Renaissance at %d, Millennium at %d", first, second)
	}
}

func ptr(f float64) *float64 { return &f }
