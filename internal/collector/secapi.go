package collector

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultEndpoint is the sec-api.io Form 13D/13G search endpoint.
const DefaultEndpoint = "https://api.sec-api.io/form-13d-13g"

// SecAPIFetcher implements Fetcher using the sec-api.io REST API.
type SecAPIFetcher struct {
	Endpoint string
	APIKey   string
	Client   *http.Client
}

// NewSecAPIFetcher creates a new fetcher with optional proxy support.
func NewSecAPIFetcher(endpoint, apiKey, proxyURL string) *SecAPIFetcher {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &SecAPIFetcher{
		Endpoint: endpoint,
		APIKey:   apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *SecAPIFetcher) Name() string { return "sec-api.io" }

// FetchFilings returns up to limit of the filer's most recent 13D/13G
// filings, newest first.
func (f *SecAPIFetcher) FetchFilings(cik string, limit int) ([]RawFiling, error) {
	payload := map[string]any{
		// Lucene query: all 13D/13G filings for this filer's CIK.
		"query": fmt.Sprintf("filers.cik:%s AND accessionNo:*", cik),
		"from":  0,
		"size":  limit,
		"sort":  []map[string]any{{"filedAt": map[string]string{"order": "desc"}}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequest("POST", f.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", f.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch filings: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch filings: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Filings []RawFiling `json:"filings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode filings: %w", err)
	}
	return result.Filings, nil
}
