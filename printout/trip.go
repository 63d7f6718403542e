// Package printout renders saved trips as printable PDFs.
package printout

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"tripmind/models"
	"tripmind/schedule"
)

// Printer renders trip PDFs. Hangul needs a UTF-8 TrueType font; without
// one the core Arial font is used and non-Latin text degrades.
type Printer struct {
	fontPath string
}

// New creates a printer. fontPath may be empty.
func New(fontPath string) *Printer {
	return &Printer{fontPath: fontPath}
}

// TripPDF lays out the trip header, the chosen flight and hotel, the day by
// day schedule and a QR code linking to shareURL.
func (p *Printer) TripPDF(view models.TripView, shareURL string) ([]byte, error) {
	// gofpdf resolves font files against its font directory
	pdf := gofpdf.New("P", "mm", "A4", filepath.Dir(p.fontPath))
	family, tr := "Arial", pdf.UnicodeTranslatorFromDescriptor("")
	if p.fontPath != "" {
		file := filepath.Base(p.fontPath)
		pdf.AddUTF8Font("body", "", file)
		pdf.AddUTF8Font("body", "B", file)
		family, tr = "body", func(s string) string { return s }
	}
	pdf.AddPage()

	title := view.TripSummary
	if title == "" {
		title = "Trip"
	}
	pdf.SetFont(family, "B", 16)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(12)

	pdf.SetFont(family, "", 11)
	pdf.Cell(0, 7, tr(fmt.Sprintf("%s ~ %s  (%s)", orDash(view.StartDate), orDash(view.EndDate), view.DurationText)))
	pdf.Ln(7)
	pdf.Cell(0, 7, tr(fmt.Sprintf("Travellers: %d   Total: %s KRW   Per person: %s KRW",
		view.HeadCount, won(view.TotalCost), won(view.PerPersonBudget))))
	pdf.Ln(10)

	if len(view.Flights) > 0 {
		f := view.Flights[0]
		pdf.SetFont(family, "B", 12)
		pdf.Cell(0, 7, tr("Flight"))
		pdf.Ln(7)
		pdf.SetFont(family, "", 10)
		pdf.Cell(0, 6, tr(fmt.Sprintf("%s  %s -> %s  /  %s -> %s", f.Label(),
			schedule.FormatClock(f.OutboundDepartureTime), schedule.FormatClock(f.OutboundArrivalTime),
			schedule.FormatClock(f.InboundDepartureTime), schedule.FormatClock(f.InboundArrivalTime))))
		pdf.Ln(8)
	}
	if len(view.Hotels) > 0 {
		h := view.Hotels[0]
		pdf.SetFont(family, "B", 12)
		pdf.Cell(0, 7, tr("Hotel"))
		pdf.Ln(7)
		pdf.SetFont(family, "", 10)
		pdf.Cell(0, 6, tr(fmt.Sprintf("%s  %s KRW / night", h.Name, won(h.Price))))
		pdf.Ln(8)
	}

	for _, day := range view.Schedule {
		pdf.SetFont(family, "B", 12)
		pdf.Cell(0, 8, tr(fmt.Sprintf("Day %d  %s", day.Day, day.Date)))
		pdf.Ln(8)
		pdf.SetFont(family, "", 10)
		for _, ev := range day.Events {
			line := ev.TimeSlot + "  " + ev.PlaceName
			if ev.Description != "" {
				line += " - " + ev.Description
			}
			pdf.MultiCell(140, 5, tr(line), "", "L", false)
		}
		pdf.Ln(2)
	}

	if shareURL != "" {
		qrPNG, err := qrcode.Encode(shareURL, qrcode.Medium, 256)
		if err != nil {
			return nil, fmt.Errorf("encode share QR: %w", err)
		}
		imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
		pdf.ImageOptions("qr", 160, 15, 35, 35, false, imageOpts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render trip PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func orDash(s string) string {
	if s == "" {
		return schedule.Placeholder
	}
	return s
}

// won formats an amount with thousands separators.
func won(v float64) string {
	s := strconv.FormatInt(int64(v), 10)
	neg := len(s) > 0 && s[0] == '-'
	if neg {
		s = s[1:]
	}
	var out []byte
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
