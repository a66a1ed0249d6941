package review

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"scrub/internal/segment"
	"scrub/internal/services"
)

// Schema identifies which column set a review file carries. The two modes
// write different columns, so callers must track which schema a file uses;
// Read reports the schema it detected from the header.
type Schema int

const (
	// SchemaWord is the word-censorship layout:
	// start,hms_timestamp,end,word,context
	SchemaWord Schema = iota
	// SchemaTopic is the topic layout:
	// start_seconds,hms_timestamp,end_seconds,topic,confidence,text_segment
	SchemaTopic
)

func (s Schema) String() string {
	if s == SchemaTopic {
		return "topic"
	}
	return "word"
}

var (
	wordHeader  = []string{"start", "hms_timestamp", "end", "word", "context"}
	topicHeader = []string{"start_seconds", "hms_timestamp", "end_seconds", "topic", "confidence", "text_segment"}
)

// WriteWords serializes a word-mode review set to path.
func WriteWords(records segment.ReviewSet, path string) error {
	return write(records, path, SchemaWord)
}

// WriteTopics serializes a topic-mode review set to path.
func WriteTopics(records segment.ReviewSet, path string) error {
	return write(records, path, SchemaTopic)
}

func write(records segment.ReviewSet, path string, schema Schema) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create review file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := wordHeader
	if schema == SchemaTopic {
		header = topicHeader
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write review header: %w", err)
	}
	for _, record := range records {
		var row []string
		switch schema {
		case SchemaTopic:
			row = []string{
				formatSeconds(record.Start),
				record.HMS(),
				formatSeconds(record.End),
				record.Label,
				fmt.Sprintf("%.2f%%", record.Confidence),
				record.Context,
			}
		default:
			row = []string{
				formatSeconds(record.Start),
				record.HMS(),
				formatSeconds(record.End),
				record.Label,
				record.Context,
			}
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write review row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush review file: %w", err)
	}
	return file.Close()
}

// Read parses a review file back into a ReviewSet, detecting the schema
// from the header. Any malformed row fails the whole read: the file is a
// human-approved artifact, and silently dropping a row would silently drop
// an edit the user expects to apply.
func Read(path string) (segment.ReviewSet, Schema, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, SchemaWord, services.Wrap(services.ErrInputNotFound, "review", "read", path, nil)
		}
		return nil, SchemaWord, fmt.Errorf("open review file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, SchemaWord, services.Wrap(services.ErrReviewParse, "review", "read", path, err)
	}
	if len(rows) == 0 {
		return nil, SchemaWord, services.Wrap(services.ErrReviewParse, "review", "read", "file has no header", nil)
	}

	schema, err := detectSchema(rows[0])
	if err != nil {
		return nil, SchemaWord, services.Wrap(services.ErrReviewParse, "review", "read", path, err)
	}

	records := make(segment.ReviewSet, 0, len(rows)-1)
	for idx, row := range rows[1:] {
		record, err := parseRow(row, schema)
		if err != nil {
			return nil, schema, services.Wrap(services.ErrReviewParse, "review", "read",
				fmt.Sprintf("row %d", idx+2), err)
		}
		records = append(records, record)
	}
	records.SortByStart()
	return records, schema, nil
}

func detectSchema(header []string) (Schema, error) {
	normalized := make([]string, len(header))
	for i, column := range header {
		normalized[i] = strings.ToLower(strings.TrimSpace(column))
	}
	switch {
	case headerEquals(normalized, wordHeader):
		return SchemaWord, nil
	case headerEquals(normalized, topicHeader):
		return SchemaTopic, nil
	default:
		return SchemaWord, fmt.Errorf("unrecognized header %v: expected %v or %v", header, wordHeader, topicHeader)
	}
}

func headerEquals(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func parseRow(row []string, schema Schema) (segment.MatchRecord, error) {
	var record segment.MatchRecord
	wantFields := len(wordHeader)
	if schema == SchemaTopic {
		wantFields = len(topicHeader)
	}
	if len(row) != wantFields {
		return record, fmt.Errorf("expected %d fields, got %d", wantFields, len(row))
	}

	start, err := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
	if err != nil {
		return record, fmt.Errorf("start %q: %w", row[0], err)
	}
	end, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil {
		return record, fmt.Errorf("end %q: %w", row[2], err)
	}
	record.Start = start
	record.End = end
	if !record.Valid() {
		return record, fmt.Errorf("invalid interval [%g, %g)", start, end)
	}
	record.Label = row[3]

	switch schema {
	case SchemaTopic:
		confidence, err := parsePercent(row[4])
		if err != nil {
			return record, fmt.Errorf("confidence %q: %w", row[4], err)
		}
		record.Confidence = confidence
		record.Context = row[5]
	default:
		record.Confidence = -1
		record.Context = row[4]
	}
	return record, nil
}

func parsePercent(value string) (float64, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(value), "%")
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, err
	}
	if parsed < 0 || parsed > 100 {
		return 0, fmt.Errorf("out of range: %g", parsed)
	}
	return parsed, nil
}

// formatSeconds renders a seconds value with a decimal point so the column
// reads as a time, matching rows like "12.0" in reviewer spreadsheets.
// Fractions beyond float64's shortest round-trip form are not representable
// in the file; re-reading reproduces the written value exactly.
func formatSeconds(value float64) string {
	formatted := strconv.FormatFloat(value, 'f', -1, 64)
	if !strings.Contains(formatted, ".") {
		formatted += ".0"
	}
	return formatted
}
