package solr

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/iziplay/vufind-api/pkg/vufind"
)

// Processor receives the documents of a dump and progress updates.
type Processor interface {
	Stats(ctx context.Context, path string, percent float64)
	Document(ctx context.Context, doc vufind.Document)
}

// FileResult represents the result of processing a single file
type FileResult struct {
	FilePath    string
	RecordCount int
	Skipped     int
	Error       error
}

// countingReader tracks the number of bytes read from the underlying file.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// openMaybeCompressed returns a reader, that transparently decompresses gzip
// input.
func openMaybeCompressed(r io.Reader) (io.Reader, func() error, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil || magic[0] != 0x1f || magic[1] != 0x8b {
		return br, func() error { return nil }, nil
	}
	gz, err := gzip.NewReader(br)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	return gz, gz.Close, nil
}

// ProcessFile reads a dump with one JSON document per line, plain or gzip
// compressed. Lines that cannot be decoded are logged and skipped.
func ProcessFile(ctx context.Context, filePath string, opts Options, processor Processor) FileResult {
	result := FileResult{
		FilePath: filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		result.Error = fmt.Errorf("failed to open dump: %w", err)
		return result
	}
	defer file.Close()

	var size int64
	if fi, err := file.Stat(); err == nil {
		size = fi.Size()
	}

	counter := &countingReader{r: file}
	reader, closeFunc, err := openMaybeCompressed(counter)
	if err != nil {
		result.Error = err
		return result
	}
	defer closeFunc()

	bufReader := bufio.NewReaderSize(reader, 4*1024*1024) // 4MB buffer

	lineCount := 0
	for {
		if err := ctx.Err(); err != nil {
			result.Error = err
			return result
		}

		line, readErr := bufReader.ReadBytes('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			result.Error = fmt.Errorf("read error at line %d: %w", lineCount+1, readErr)
			return result
		}
		if len(line) > 0 {
			lineCount++
			if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
				doc, err := DecodeDocument(bytes.NewReader(trimmed), opts)
				if err != nil {
					slog.Warn("Skipping undecodable line", "file", filePath, "line", lineCount, "error", err)
					result.Skipped++
				} else {
					processor.Document(ctx, doc)
					result.RecordCount++

					// Update progress every 10000 records
					if result.RecordCount%10000 == 0 && size > 0 {
						processor.Stats(ctx, filePath, float64(counter.n)/float64(size)*100)
					}
				}
			}
		}
		if readErr != nil {
			break
		}
	}

	processor.Stats(ctx, filePath, 100.0)
	slog.Info("Completed dump", "file", filePath, "records", result.RecordCount, "skipped", result.Skipped)
	return result
}
