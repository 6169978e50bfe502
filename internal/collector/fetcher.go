package collector

// RawOwner is one owner entry attached to a raw filing. The percentage
// field is dynamically typed on the wire (integer, float, or absent), so
// it is decoded as-is and validated during extraction.
type RawOwner struct {
	Percent any `json:"amountAsPercent"`
}

// RawFiling is the wire shape of one 13D/13G filing as returned by the
// data source. Read-only input; normalization happens in Extract.
type RawFiling struct {
	FormType string     `json:"formType"`
	FiledAt  string     `json:"filedAt"` // ISO-8601, offset-aware
	Issuer   string     `json:"nameOfIssuer"`
	Owners   []RawOwner `json:"owners"`
}

// Fetcher defines the interface for fetching raw 13D/13G filings.
type Fetcher interface {
	FetchFilings(cik string, limit int) ([]RawFiling, error)
	Name() string
}
