package model

// Filing is one normalized 13D/13G filing.
type Filing struct {
	Form      string
	FiledDate string // YYYY-MM-DD
	Issuer    string
	// PercentOwned is the largest ownership percentage reported among the
	// filing's owners; nil when no owner carried a numeric percentage.
	PercentOwned *float64
}

// FilerReport holds the recent filings collected for one filer.
type FilerReport struct {
	Filer   Filer
	Filings []Filing
	// FetchErr is non-empty when the data-source call for this filer
	// failed; Filings is empty in that case.
	FetchErr string
}
