package notifier

import (
	"fmt"
	"strings"
	"time"

	"FilingSentinel/internal/model"
)

const issuerWidth = 35

// FormatDailyReport formats the per-filer filing reports into a single
// plain-text digest. Output is deterministic for identical inputs and
// generatedAt.
func FormatDailyReport(reports []model.FilerReport, generatedAt time.Time, maxPerFiler int) string {
	var b strings.Builder

	b.WriteString("Daily 13D/13G Ownership Snapshot\n")
	b.WriteString(fmt.Sprintf("Date (UTC): %s\n", generatedAt.UTC().Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("Showing up to %d latest filings per fund\n", maxPerFiler))
	b.WriteString("\n")

	for _, r := range reports {
		b.WriteString(strings.Repeat("=", 70) + "\n")
		b.WriteString(fmt.Sprintf("%s (CIK %s)\n", r.Filer.Name, r.Filer.CIK))
		b.WriteString(strings.Repeat("-", 70) + "\n")
		b.WriteString("Date       | Issuer                               | % owned\n")
		b.WriteString(strings.Repeat("-", 70) + "\n")

		if len(r.Filings) == 0 {
			b.WriteString("No 13D/13G filings in the lookback window.\n")
			b.WriteString("\n")
			continue
		}

		for _, f := range r.Filings {
			issuer := strings.TrimSpace(f.Issuer)
			if len(issuer) > issuerWidth {
				issuer = issuer[:issuerWidth-3] + "..."
			}

			pct := "N/A"
			if f.PercentOwned != nil {
				pct = fmt.Sprintf("%.1f%%", *f.PercentOwned)
			}

			b.WriteString(fmt.Sprintf("%s | %-*s | %s\n", f.FiledDate, issuerWidth, issuer, pct))
		}

		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}
