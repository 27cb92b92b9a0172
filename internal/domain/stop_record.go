package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMalformedCatalog is returned when the stop payload is not a JSON array.
var ErrMalformedCatalog = errors.New("malformed stop catalog")

// DecodeStops parses the static stop payload. The top level must be a JSON
// array; anything else is a load failure. Individual fields are optional and
// a field of the wrong type is treated as absent, so one odd record never
// hides the rest of the catalog. Array elements that are not objects are
// skipped.
func DecodeStops(data []byte) ([]Stop, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode stops: %w: %v", ErrMalformedCatalog, err)
	}

	stops := make([]Stop, 0, len(raw))
	for _, item := range raw {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			continue
		}
		stops = append(stops, stopFromFields(fields))
	}
	return stops, nil
}

func stopFromFields(f map[string]json.RawMessage) Stop {
	return Stop{
		ID:          rawID(f["id"]),
		Name:        rawString(f["name"]),
		Lat:         rawFloat(f["lat"]),
		Lng:         rawFloat(f["lng"]),
		Address:     rawString(f["address"]),
		Description: rawString(f["description"]),
		Tags:        rawStrings(f["tags"]),
	}
}

// Numeric ids are accepted and rendered in their shortest decimal form.
func rawID(b json.RawMessage) string {
	if s := strings.TrimSpace(rawString(b)); s != "" {
		return s
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err != nil {
		return ""
	}
	return n.String()
}

func rawString(b json.RawMessage) string {
	if len(b) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return ""
	}
	return s
}

func rawFloat(b json.RawMessage) *float64 {
	if len(b) == 0 {
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func rawStrings(b json.RawMessage) []string {
	if len(b) == 0 {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			continue
		}
		out = append(out, s)
	}
	return out
}

// StopRecord is the wire form of a Stop.
type StopRecord struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
	Address     string   `json:"address"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// RecordOf converts a stop to its wire form.
func RecordOf(s Stop) StopRecord {
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}
	return StopRecord{
		ID:          s.ID,
		Name:        s.Name,
		Lat:         s.Lat,
		Lng:         s.Lng,
		Address:     s.Address,
		Description: s.Description,
		Tags:        tags,
	}
}

// FormatCoord renders a coordinate for logs.
func FormatCoord(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 5, 64)
}
