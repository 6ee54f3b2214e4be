package codec

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locationreminders/internal/domain"
)

func sampleReminders() []domain.Reminder {
	return []domain.Reminder{
		*domain.NewReminder("title", "description", "location", 12.5, -7.3),
		*domain.NewReminder("Buy milk", "", "Corner shop", -360, 360),
	}
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"json", "json", false},
		{"JSON", "json", false},
		{"yaml", "yaml", false},
		{"yml", "yaml", false},
		{" yaml ", "yaml", false},
		{"csv", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		c, err := ForFormat(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "ForFormat(%q)", tt.input)
			continue
		}
		require.NoError(t, err, "ForFormat(%q)", tt.input)
		assert.Equal(t, tt.want, c.Format())
	}
}

func TestForPath(t *testing.T) {
	c, err := ForPath("/tmp/backup.yml")
	require.NoError(t, err)
	assert.Equal(t, "yaml", c.Format())

	c, err = ForPath("reminders.json")
	require.NoError(t, err)
	assert.Equal(t, "json", c.Format())

	_, err = ForPath("reminders")
	assert.Error(t, err)
}

func TestCodecsPreserveReminders(t *testing.T) {
	for _, c := range []Codec{NewJSONCodec(), NewYAMLCodec()} {
		t.Run(c.Format(), func(t *testing.T) {
			want := sampleReminders()

			var buf bytes.Buffer
			require.NoError(t, c.Export(want, &buf))

			got, err := c.Parse(&buf)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestCodecsEmptyInput(t *testing.T) {
	for _, c := range []Codec{NewJSONCodec(), NewYAMLCodec()} {
		t.Run(c.Format(), func(t *testing.T) {
			got, err := c.Parse(strings.NewReader(""))
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestCodecsPreserveNonFiniteCoordinates(t *testing.T) {
	for _, c := range []Codec{NewJSONCodec(), NewYAMLCodec()} {
		t.Run(c.Format(), func(t *testing.T) {
			in := []domain.Reminder{
				*domain.NewReminder("t", "d", "l", math.NaN(), math.Inf(1)),
				*domain.NewReminder("t", "d", "l", math.Inf(-1), 0),
			}

			var buf bytes.Buffer
			require.NoError(t, c.Export(in, &buf))

			got, err := c.Parse(&buf)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.True(t, math.IsNaN(got[0].Latitude))
			assert.True(t, math.IsInf(got[0].Longitude, 1))
			assert.True(t, math.IsInf(got[1].Latitude, -1))
			assert.Equal(t, 0.0, got[1].Longitude)
		})
	}
}

func TestJSONParseCoordinateForms(t *testing.T) {
	got, err := NewJSONCodec().Parse(strings.NewReader(
		`[{"id":"a","latitude":"-Inf","longitude":12.5},{"id":"b","latitude":null}]`))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, math.IsInf(got[0].Latitude, -1))
	assert.Equal(t, 12.5, got[0].Longitude)
	assert.Equal(t, 0.0, got[1].Latitude)

	_, err = NewJSONCodec().Parse(strings.NewReader(`[{"id":"a","latitude":"north"}]`))
	assert.Error(t, err)
}

func TestJSONExportNilIsEmptyArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONCodec().Export(nil, &buf))
	assert.Equal(t, "[]\n", buf.String())
}

func TestYAMLParse(t *testing.T) {
	input := `
reminders:
  - id: 6f1c1f5e-0000-4000-8000-000000000001
    title: Pick up parcel
    location: Post office
    latitude: 48.8566
    longitude: 2.3522
`
	got, err := NewYAMLCodec().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.Reminder{
		ID:        "6f1c1f5e-0000-4000-8000-000000000001",
		Title:     "Pick up parcel",
		Location:  "Post office",
		Latitude:  48.8566,
		Longitude: 2.3522,
	}, got[0])
}

func TestParseInvalid(t *testing.T) {
	_, err := NewJSONCodec().Parse(strings.NewReader(`{"id": 1`))
	assert.Error(t, err)

	_, err = NewYAMLCodec().Parse(strings.NewReader("reminders: [\n"))
	assert.Error(t, err)
}
