package pipeline

import (
	"fmt"
	"log"
	"time"

	"FilingSentinel/internal/collector"
	"FilingSentinel/internal/model"
	"FilingSentinel/internal/notifier"
	"FilingSentinel/internal/recorder"
)

// Sender delivers one message payload to the chat platform.
type Sender interface {
	Send(text string) error
}

// Pipeline runs one fetch-format-send cycle over the watched filers.
type Pipeline struct {
	Collector *collector.Collector
	Sender    Sender
	Recorder  recorder.Recorder
	Filers    []model.Filer
	MaxLen    int
}

// New creates a Pipeline.
func New(col *collector.Collector, sender Sender, rec recorder.Recorder, filers []model.Filer, maxLen int) *Pipeline {
	return &Pipeline{
		Collector: col,
		Sender:    sender,
		Recorder:  rec,
		Filers:    filers,
		MaxLen:    maxLen,
	}
}

// Run executes a single run: collect filings for every filer in
// configured order, format the digest, and deliver it chunk by chunk.
// A single filer's fetch failure or a single chunk's delivery failure
// never aborts the run; they mark the result partial instead.
func (p *Pipeline) Run() *model.RunResult {
	started := time.Now().UTC()
	log.Printf("[INFO] running daily 13D/13G report for %d filers", len(p.Filers))

	result := &model.RunResult{
		StartedAt:   started,
		FilersTotal: len(p.Filers),
	}

	reports := make([]model.FilerReport, 0, len(p.Filers))
	for _, filer := range p.Filers {
		report := model.FilerReport{Filer: filer}

		filings, err := p.Collector.CollectFiler(filer, started)
		if err != nil {
			log.Printf("[ERROR] fetch filings for %s (CIK %s): %v", filer.Name, filer.CIK, err)
			report.FetchErr = err.Error()
			result.FilersFailed++
		} else {
			report.Filings = filings
			result.FilingsTotal += len(filings)
		}
		reports = append(reports, report)

		p.recordFetch(&report)
	}

	text := notifier.FormatDailyReport(reports, started, p.Collector.MaxPerFiler)
	result.ChunksTotal, result.ChunksFailed = p.deliver(text)

	result.FinishedAt = time.Now().UTC()
	result.Status = model.RunSuccess
	if result.ChunksFailed > 0 {
		result.Status = model.RunPartial
	}

	p.recordRun(result)
	log.Printf("[INFO] run finished: status=%s filers=%d/%d filings=%d chunks=%d/%d",
		result.Status, result.FilersTotal-result.FilersFailed, result.FilersTotal,
		result.FilingsTotal, result.ChunksTotal-result.ChunksFailed, result.ChunksTotal)
	return result
}

// deliver chunks the report text and sends each part sequentially,
// continuing past individual failures.
func (p *Pipeline) deliver(text string) (total, failed int) {
	chunks := notifier.ChunkText(text, p.MaxLen)
	for i, chunk := range chunks {
		body := chunk
		if len(chunks) > 1 {
			body = fmt.Sprintf("(Part %d/%d)\n%s", i+1, len(chunks), chunk)
		}
		if err := p.Sender.Send(body); err != nil {
			log.Printf("[ERROR] send report part %d/%d: %v", i+1, len(chunks), err)
			failed++
		}
	}
	return len(chunks), failed
}

func (p *Pipeline) recordFetch(report *model.FilerReport) {
	if err := p.Recorder.RecordFetch(&recorder.FetchRecord{
		CIK:     report.Filer.CIK,
		Name:    report.Filer.Name,
		Filings: len(report.Filings),
		Err:     report.FetchErr,
	}); err != nil {
		log.Printf("[ERROR] record fetch: %v", err)
	}
}

func (p *Pipeline) recordRun(result *model.RunResult) {
	if err := p.Recorder.RecordRun(result); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
}
