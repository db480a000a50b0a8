package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestICSRender(t *testing.T) {
	exporter := NewICSExporter("")

	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	payload := exporter.Render([]CalendarEvent{{
		UID:         "item-1",
		Title:       "Louvre, east wing",
		Description: "skip the line",
		Location:    "48.8606,2.3376",
		Start:       start,
		End:         start.Add(2 * time.Hour),
	}})

	body := string(payload)
	require.True(t, strings.HasPrefix(body, "BEGIN:VCALENDAR\r\n"))
	assert.Contains(t, body, "DTSTART:20250601T100000")
	assert.Contains(t, body, "DTEND:20250601T120000")
	assert.Contains(t, body, "SUMMARY:Louvre\\, east wing", "commas are escaped")
	assert.Contains(t, body, "LOCATION:48.8606\\,2.3376")
	assert.True(t, strings.HasSuffix(body, "END:VCALENDAR\r\n"))
}

func TestICSRenderEmpty(t *testing.T) {
	payload := NewICSExporter("-//test//EN").Render(nil)
	body := string(payload)
	assert.Contains(t, body, "PRODID:-//test//EN")
	assert.NotContains(t, body, "BEGIN:VEVENT")
}
