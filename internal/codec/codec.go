package codec

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"locationreminders/internal/domain"
)

// Importer interface for importing reminders from various formats
type Importer interface {
	Parse(r io.Reader) ([]domain.Reminder, error)
	Format() string
}

// Exporter interface for exporting reminders to various formats
type Exporter interface {
	Export(reminders []domain.Reminder, w io.Writer) error
	Format() string
}

// Codec both imports and exports
type Codec interface {
	Importer
	Exporter
}

// ForFormat returns the codec registered under name ("json", "yaml" or "yml")
func ForFormat(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", name)
	}
}

// ForPath picks a codec from the file extension
func ForPath(path string) (Codec, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return nil, fmt.Errorf("cannot infer format from %q", path)
	}
	return ForFormat(ext)
}
