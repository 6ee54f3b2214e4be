package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"locationreminders/internal/domain"
)

// JSONCodec handles JSON import/export of a reminder array
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// jsonReminder is the wire shape of a reminder. Coordinates go through
// jsonFloat so NaN and infinities survive a round trip.
type jsonReminder struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Latitude    jsonFloat `json:"latitude"`
	Longitude   jsonFloat `json:"longitude"`
}

// jsonFloat encodes finite values as numbers and NaN/±Inf as the strings
// "NaN", "+Inf" and "-Inf".
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return json.Marshal(v)
}

func (f *jsonFloat) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid coordinate %q", s)
		}
		*f = jsonFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = jsonFloat(v)
	return nil
}

// Parse imports reminders from JSON. Empty input yields no reminders.
func (c *JSONCodec) Parse(r io.Reader) ([]domain.Reminder, error) {
	var wire []jsonReminder
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&wire); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	reminders := make([]domain.Reminder, 0, len(wire))
	for _, w := range wire {
		reminders = append(reminders, domain.Reminder{
			ID:          w.ID,
			Title:       w.Title,
			Description: w.Description,
			Location:    w.Location,
			Latitude:    float64(w.Latitude),
			Longitude:   float64(w.Longitude),
		})
	}
	return reminders, nil
}

// Export exports reminders to JSON
func (c *JSONCodec) Export(reminders []domain.Reminder, w io.Writer) error {
	wire := make([]jsonReminder, 0, len(reminders))
	for _, r := range reminders {
		wire = append(wire, jsonReminder{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Location:    r.Location,
			Latitude:    jsonFloat(r.Latitude),
			Longitude:   jsonFloat(r.Longitude),
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(wire); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
