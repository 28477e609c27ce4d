package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/povarna/generative-ai-agents/search-agent/internal/models"
	"github.com/rs/zerolog"
)

const maxLineBytes = 4 * 1024 * 1024

// InputRecord is one parsed JSONL line. Error is set when the line could not be
// turned into a Document.
type InputRecord struct {
	Document   models.Document
	LineNumber int
	Error      error
}

type Reader struct {
	r      io.Reader
	logger *zerolog.Logger
}

func NewReader(r io.Reader, logger *zerolog.Logger) *Reader {
	return &Reader{r: r, logger: logger}
}

// ReadAll streams records until the input ends or ctx is cancelled. Blank lines
// are skipped; line numbers refer to the raw input.
func (r *Reader) ReadAll(ctx context.Context) <-chan InputRecord {
	out := make(chan InputRecord)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r.r)
		scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

		lineNumber := 0
		for scanner.Scan() {
			lineNumber++
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			record := parseLine(line, lineNumber)
			if record.Error != nil {
				r.logger.Warn().Err(record.Error).Int("line", lineNumber).Msg("Skipping unreadable record")
			}

			select {
			case out <- record:
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			select {
			case out <- InputRecord{LineNumber: lineNumber + 1, Error: fmt.Errorf("read input: %w", err)}:
			case <-ctx.Done():
			}
		}
	}()

	return out
}

func parseLine(line string, lineNumber int) InputRecord {
	record := InputRecord{LineNumber: lineNumber}

	var doc models.Document
	if err := json.Unmarshal([]byte(line), &doc); err != nil {
		record.Error = fmt.Errorf("line %d: invalid JSON: %w", lineNumber, err)
		return record
	}
	if strings.TrimSpace(doc.ID) == "" {
		record.Error = fmt.Errorf("line %d: document id is required", lineNumber)
		return record
	}

	record.Document = doc
	return record
}
