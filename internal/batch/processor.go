package batch

import (
	"context"
	"sync"

	"github.com/povarna/generative-ai-agents/search-agent/internal/models"
	"github.com/rs/zerolog"
)

//go:generate mockgen -source=processor.go -destination=mocks/mock_processor.go -package=mocks

// Sink stores one document. The redis document store implements it.
type Sink interface {
	Put(ctx context.Context, doc models.Document) error
}

type Result struct {
	ID         string
	LineNumber int
	Error      error
}

type Summary struct {
	Total   int
	Written int
	Failed  int
}

// Processor writes records to a Sink with a fixed pool of workers.
type Processor struct {
	sink    Sink
	workers int
	logger  *zerolog.Logger
}

func NewProcessor(sink Sink, workers int, logger *zerolog.Logger) *Processor {
	if workers <= 0 {
		workers = 1
	}
	return &Processor{sink: sink, workers: workers, logger: logger}
}

// Process writes every valid record and returns one Result per record, in input
// order. Records that already carry a parse error are reported without a write.
func (p *Processor) Process(ctx context.Context, records []InputRecord) []Result {
	results := make([]Result, len(records))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for range p.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = p.process(ctx, records[i])
			}
		}()
	}

	sent := 0
feed:
	for sent < len(records) {
		if ctx.Err() != nil {
			break
		}
		select {
		case jobs <- sent:
			sent++
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	for i := sent; i < len(records); i++ {
		results[i] = Result{ID: records[i].Document.ID, LineNumber: records[i].LineNumber, Error: ctx.Err()}
	}

	return results
}

func (p *Processor) process(ctx context.Context, record InputRecord) Result {
	result := Result{ID: record.Document.ID, LineNumber: record.LineNumber}
	if record.Error != nil {
		result.Error = record.Error
		return result
	}

	if err := p.sink.Put(ctx, record.Document); err != nil {
		p.logger.Error().Err(err).Str("id", record.Document.ID).Int("line", record.LineNumber).Msg("Failed to store document")
		result.Error = err
		return result
	}

	p.logger.Debug().Str("id", record.Document.ID).Msg("Document stored")
	return result
}

func Summarize(results []Result) Summary {
	summary := Summary{Total: len(results)}
	for _, r := range results {
		if r.Error != nil {
			summary.Failed++
			continue
		}
		summary.Written++
	}
	return summary
}
