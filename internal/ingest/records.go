// Package ingest parses activity-record snapshots exported by the storage
// collaborator. Two layouts are accepted: a JSON array of records, or
// newline-delimited JSON with one record per line.
//
// Parsing validates every record against the active factor table and rejects
// the whole snapshot on the first bad row; a partially ingested snapshot
// would silently understate aggregates downstream.
package ingest

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/mfleet/ecotally/internal/emission"
	"github.com/mfleet/ecotally/internal/factor"
	"github.com/mfleet/ecotally/internal/logging"
)

// maxLineBytes caps a single NDJSON line. Activity records are small;
// anything past this is a malformed export.
const maxLineBytes = 1 << 20

// ReadFile loads an activity snapshot from path. The format is detected from
// the first non-space byte: '[' selects the JSON array layout, anything else
// is treated as NDJSON.
func ReadFile(ctx context.Context, path string, table *factor.Table) ([]emission.ActivityRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening records file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	records, err := Read(ctx, f, table)
	if err != nil {
		return nil, fmt.Errorf("records file %s: %w", path, err)
	}
	return records, nil
}

// Read parses an activity snapshot from r, detecting the layout, validating
// every record, and assigning a ULID to records that arrive without an ID.
func Read(ctx context.Context, r io.Reader, table *factor.Table) ([]emission.ActivityRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	trimmed := bytes.TrimLeftFunc(data, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	var records []emission.ActivityRecord
	if len(trimmed) > 0 && trimmed[0] == '[' {
		records, err = parseArray(trimmed)
	} else {
		records, err = parseNDJSON(trimmed)
	}
	if err != nil {
		return nil, err
	}

	if err := finalize(records, table); err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx)
	log.Debug().
		Str("component", "ingest").
		Int("record_count", len(records)).
		Msg("parsed activity snapshot")

	return records, nil
}

// parseArray decodes a JSON array snapshot.
func parseArray(data []byte) ([]emission.ActivityRecord, error) {
	var records []emission.ActivityRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing records JSON: %w", err)
	}
	return records, nil
}

// parseNDJSON decodes a newline-delimited snapshot, reporting the failing
// line number on error.
func parseNDJSON(data []byte) ([]emission.ActivityRecord, error) {
	var records []emission.ActivityRecord

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec emission.ActivityRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("parsing record on line %d: %w", lineNo, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning records: %w", err)
	}
	return records, nil
}

// finalize assigns IDs where missing and validates each record against the
// factor table.
func finalize(records []emission.ActivityRecord, table *factor.Table) error {
	for i := range records {
		if records[i].ID == "" {
			records[i].ID = ulid.Make().String()
		}
		if records[i].Timestamp.IsZero() {
			return fmt.Errorf("record %d (%s): missing timestamp", i, records[i].ID)
		}
		if err := records[i].Validate(table); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}
