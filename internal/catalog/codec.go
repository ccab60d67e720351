package catalog

import (
	"bytes"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// Decode reads a JSON array of catalog records.
func Decode(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return records, nil
}

// DecodeRecord parses a single JSON object payload.
func DecodeRecord(payload []byte) (Record, error) {
	var rec Record
	if err := json.NewDecoder(bytes.NewReader(payload)).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode catalog record: %w", err)
	}
	return rec, nil
}

// Encode writes records as an indented JSON array.
func Encode(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return nil
}

// EncodeRecords marshals each record into its own JSON payload, in order.
func EncodeRecords(records []Record) ([][]byte, error) {
	out := make([][]byte, 0, len(records))
	for i, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("encode catalog record %d: %w", i, err)
		}
		out = append(out, b)
	}
	return out, nil
}
