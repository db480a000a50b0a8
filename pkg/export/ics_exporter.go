package export

import (
	"bytes"
	"strings"
	"time"
)

// CalendarEvent is one scheduled block handed to the ICS renderer.
type CalendarEvent struct {
	UID         string
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

// ICSExporter renders events into an iCalendar (RFC 5545) document.
type ICSExporter struct {
	productID string
}

// NewICSExporter constructs an ICS exporter.
func NewICSExporter(productID string) *ICSExporter {
	if productID == "" {
		productID = "-//wayplan//itinerary//EN"
	}
	return &ICSExporter{productID: productID}
}

const icsTimeLayout = "20060102T150405"

// Render produces the calendar document for the given events.
func (e *ICSExporter) Render(events []CalendarEvent) []byte {
	buf := &bytes.Buffer{}
	writeLine(buf, "BEGIN:VCALENDAR")
	writeLine(buf, "VERSION:2.0")
	writeLine(buf, "PRODID:"+e.productID)
	writeLine(buf, "CALSCALE:GREGORIAN")

	for _, event := range events {
		writeLine(buf, "BEGIN:VEVENT")
		writeLine(buf, "UID:"+escapeText(event.UID))
		writeLine(buf, "DTSTAMP:"+time.Now().UTC().Format(icsTimeLayout)+"Z")
		writeLine(buf, "DTSTART:"+event.Start.Format(icsTimeLayout))
		writeLine(buf, "DTEND:"+event.End.Format(icsTimeLayout))
		writeLine(buf, "SUMMARY:"+escapeText(event.Title))
		if event.Description != "" {
			writeLine(buf, "DESCRIPTION:"+escapeText(event.Description))
		}
		if event.Location != "" {
			writeLine(buf, "LOCATION:"+escapeText(event.Location))
		}
		writeLine(buf, "END:VEVENT")
	}

	writeLine(buf, "END:VCALENDAR")
	return buf.Bytes()
}

// writeLine terminates content lines with CRLF as the format requires.
func writeLine(buf *bytes.Buffer, line string) {
	buf.WriteString(line)
	buf.WriteString("\r\n")
}

func escapeText(raw string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
	)
	return replacer.Replace(raw)
}
