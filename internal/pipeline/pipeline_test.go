package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"FilingSentinel/internal/collector"
	"FilingSentinel/internal/model"
	"FilingSentinel/internal/recorder"
)

type fakeSender struct {
	sent    []string
	failAll bool
}

func (s *fakeSender) Send(text string) error {
	s.sent = append(s.sent, text)
	if s.failAll {
		return errors.New("delivery refused")
	}
	return nil
}

var testFilers = []model.Filer{
	{Name: "Starboard Value", CIK: "1517137"},
	{Name: "Jane Street", CIK: "1595888"},
}

func newTestPipeline(fetcher collector.Fetcher, sender Sender) *Pipeline {
	col := collector.NewCollector(fetcher, 365, 5)
	return New(col, sender, recorder.NewNoopRecorder(), testFilers, 4000)
}

func TestRun_AllFilersSucceed(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Filings: map[string][]collector.RawFiling{
			"1517137": {
				{FormType: "SC 13D", FiledAt: "2099-01-02T10:00:00Z", Issuer: "Alpha Corp",
					Owners: []collector.RawOwner{{Percent: 6.2}}},
			},
			"1595888": {
				{FormType: "SC 13G", FiledAt: "2099-01-03T10:00:00Z", Issuer: "Beta Inc"},
			},
		},
	}
	sender := &fakeSender{}

	result := newTestPipeline(fetcher, sender).Run()

	if result.Status != model.RunSuccess {
		t.Errorf("expected SUCCESS, got %s", result.Status)
	}
	if result.FilersFailed != 0 || result.FilingsTotal != 2 {
		t.Errorf("unexpected counts: failed=%d filings=%d", result.FilersFailed, result.FilingsTotal)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sender.sent))
	}
	if strings.Contains(sender.sent[0], "(Part") {
		t.Error("single-chunk report should not carry a part prefix")
	}
	for _, want := range []string{"Alpha Corp", "Beta Inc", "6.2%"} {
		if !strings.Contains(sender.sent[0], want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestRun_OneFilerFetchFailure(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Filings: map[string][]collector.RawFiling{
			"1595888": {
				{FormType: "SC 13G", FiledAt: "2099-01-03T10:00:00Z", Issuer: "Beta Inc"},
			},
		},
		Errs: map[string]error{
			"1517137": errors.New("connection refused"),
		},
	}
	sender := &fakeSender{}

	result := newTestPipeline(fetcher, sender).Run()

	// One filer failing never aborts the run or fails delivery.
	if result.Status != model.RunSuccess {
		t.Errorf("expected SUCCESS despite fetch failure, got %s", result.Status)
	}
	if result.FilersFailed != 1 {
		t.Errorf("expected 1 failed filer, got %d", result.FilersFailed)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sender.sent))
	}
	report := sender.sent[0]
	if !strings.Contains(report, "Starboard Value (CIK 1517137)") {
		t.Error("failing filer's block missing from report")
	}
	if !strings.Contains(report, "Jane Street (CIK 1595888)") {
		t.Error("healthy filer's block missing from report")
	}
	if !strings.Contains(report, "No 13D/13G filings in the lookback window.") {
		t.Error("failing filer should show the no-filings placeholder")
	}
}

func TestRun_DeliveryFailureIsPartial(t *testing.T) {
	fetcher := &collector.MockFetcher{}
	sender := &fakeSender{failAll: true}

	result := newTestPipeline(fetcher, sender).Run()

	if result.Status != model.RunPartial {
		t.Errorf("expected PARTIAL when delivery fails, got %s", result.Status)
	}
	if result.ChunksFailed != result.ChunksTotal || result.ChunksTotal == 0 {
		t.Errorf("expected every chunk marked failed, got %d/%d", result.ChunksFailed, result.ChunksTotal)
	}
}

func TestRun_MultiChunkPartPrefixes(t *testing.T) {
	// Enough filings to force multiple chunks at a small max length.
	var raw []collector.RawFiling
	for i := 0; i < 30; i++ {
		raw = append(raw, collector.RawFiling{
			FormType: "SC 13D",
			FiledAt:  "2099-01-02T10:00:00Z",
			Issuer:   "Issuer With A Reasonably Long Name",
		})
	}
	fetcher := &collector.MockFetcher{
		Filings: map[string][]collector.RawFiling{"1517137": raw, "1595888": raw},
	}
	sender := &fakeSender{}

	col := collector.NewCollector(fetcher, 365, 30)
	p := New(col, sender, recorder.NewNoopRecorder(), testFilers, 400)
	result := p.Run()

	if result.ChunksTotal < 2 {
		t.Fatalf("expected a multi-chunk report, got %d chunks", result.ChunksTotal)
	}
	if len(sender.sent) != result.ChunksTotal {
		t.Fatalf("expected %d sends, got %d", result.ChunksTotal, len(sender.sent))
	}
	for i, msg := range sender.sent {
		want := fmt.Sprintf("(Part %d/%d)\n", i+1, result.ChunksTotal)
		if !strings.HasPrefix(msg, want) {
			t.Errorf("part %d: expected prefix %q, got %q", i+1, want, firstLine(msg))
		}
	}
	if result.Status != model.RunSuccess {
		t.Errorf("expected SUCCESS, got %s", result.Status)
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
