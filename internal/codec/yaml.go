package codec

import (
	"errors"
	"fmt"
	"io"

	"locationreminders/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlDocument is the top-level YAML shape:
//
//	reminders:
//	  - id: ...
//	    title: ...
type yamlDocument struct {
	Reminders []yamlReminder `yaml:"reminders"`
}

type yamlReminder struct {
	ID          string  `yaml:"id"`
	Title       string  `yaml:"title"`
	Description string  `yaml:"description,omitempty"`
	Location    string  `yaml:"location,omitempty"`
	Latitude    float64 `yaml:"latitude"`
	Longitude   float64 `yaml:"longitude"`
}

// Parse imports reminders from YAML. Empty input yields no reminders.
func (c *YAMLCodec) Parse(r io.Reader) ([]domain.Reminder, error) {
	var doc yamlDocument
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	reminders := make([]domain.Reminder, 0, len(doc.Reminders))
	for _, yr := range doc.Reminders {
		reminders = append(reminders, domain.Reminder{
			ID:          yr.ID,
			Title:       yr.Title,
			Description: yr.Description,
			Location:    yr.Location,
			Latitude:    yr.Latitude,
			Longitude:   yr.Longitude,
		})
	}

	return reminders, nil
}

// Export exports reminders to YAML
func (c *YAMLCodec) Export(reminders []domain.Reminder, w io.Writer) error {
	doc := yamlDocument{
		Reminders: make([]yamlReminder, 0, len(reminders)),
	}

	for _, r := range reminders {
		doc.Reminders = append(doc.Reminders, yamlReminder{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Location:    r.Location,
			Latitude:    r.Latitude,
			Longitude:   r.Longitude,
		})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
