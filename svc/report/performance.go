package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/qrbench/pkg/qrcode"
	"github.com/dmitrymomot/qrbench/svc/qrstate"
)

// Format is an artifact format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPNG  Format = "png"
	FormatSVG  Format = "svg"
)

// ParseFormat accepts any known format name in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV, FormatPNG, FormatSVG:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// IsImage reports whether f is an image format.
func (f Format) IsImage() bool { return f == FormatPNG || f == FormatSVG }

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatPNG:
		return qrcode.MIMEPNG
	case FormatSVG:
		return qrcode.MIMESVG
	default:
		return "application/json"
	}
}

// MetricRecord is a metric as exported, without image data.
type MetricRecord struct {
	ID          string    `json:"id"`
	RenderTime  float64   `json:"renderTime"`
	MemoryUsage float64   `json:"memoryUsage"`
	FileSize    float64   `json:"fileSize"`
	Timestamp   time.Time `json:"timestamp"`
	Value       string    `json:"value"`
	Size        int       `json:"size"`
	HasLogo     bool      `json:"hasLogo"`
}

// Summary aggregates an export.
type Summary struct {
	AverageRenderTime  float64 `json:"averageRenderTime"`
	AverageMemoryUsage float64 `json:"averageMemoryUsage"`
	AverageFileSize    float64 `json:"averageFileSize"`
	MinRenderTime      float64 `json:"minRenderTime"`
	MaxRenderTime      float64 `json:"maxRenderTime"`
}

// Performance is the exported document of one library.
type Performance struct {
	PackageName      string         `json:"packageName"`
	ExportDate       time.Time      `json:"exportDate"`
	TotalGenerations int            `json:"totalGenerations"`
	Metrics          []MetricRecord `json:"metrics"`
	Summary          Summary        `json:"summary"`
}

// NewPerformance builds the export document. An empty stack yields a zero
// summary.
func NewPerformance(pkg string, metrics []qrstate.GenerationMetric, now time.Time) Performance {
	p := Performance{
		PackageName:      pkg,
		ExportDate:       now.UTC(),
		TotalGenerations: len(metrics),
		Metrics:          make([]MetricRecord, 0, len(metrics)),
	}
	if len(metrics) == 0 {
		return p
	}

	var render, memory, size float64
	p.Summary.MinRenderTime = metrics[0].RenderTime
	p.Summary.MaxRenderTime = metrics[0].RenderTime
	for _, m := range metrics {
		p.Metrics = append(p.Metrics, MetricRecord{
			ID:          m.ID,
			RenderTime:  m.RenderTime,
			MemoryUsage: m.MemoryUsage,
			FileSize:    m.FileSize,
			Timestamp:   m.Timestamp,
			Value:       m.Value,
			Size:        m.Size,
			HasLogo:     m.HasLogo(),
		})
		render += m.RenderTime
		memory += m.MemoryUsage
		size += m.FileSize
		p.Summary.MinRenderTime = min(p.Summary.MinRenderTime, m.RenderTime)
		p.Summary.MaxRenderTime = max(p.Summary.MaxRenderTime, m.RenderTime)
	}

	n := float64(len(metrics))
	p.Summary.AverageRenderTime = render / n
	p.Summary.AverageMemoryUsage = memory / n
	p.Summary.AverageFileSize = size / n
	return p
}

// WriteJSON writes p as indented JSON.
func WriteJSON(w io.Writer, p Performance) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// CSVHeader is the first row of a CSV export.
var CSVHeader = []string{
	"ID",
	"Package",
	"Render Time (ms)",
	"Memory Usage (bytes)",
	"File Size (bytes)",
	"Timestamp",
	"Content Length",
	"QR Size",
	"Has Logo",
}

// WriteCSV writes p as CSV with every cell quoted.
func WriteCSV(w io.Writer, p Performance) error {
	rows := make([][]string, 0, len(p.Metrics)+1)
	rows = append(rows, CSVHeader)
	for _, m := range p.Metrics {
		logo := "No"
		if m.HasLogo {
			logo = "Yes"
		}
		rows = append(rows, []string{
			m.ID,
			p.PackageName,
			strconv.FormatFloat(m.RenderTime, 'f', 3, 64),
			strconv.FormatFloat(m.MemoryUsage, 'f', -1, 64),
			strconv.FormatFloat(m.FileSize, 'f', -1, 64),
			m.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z"),
			strconv.Itoa(len([]rune(m.Value))),
			strconv.Itoa(m.Size),
			logo,
		})
	}

	for i, row := range rows {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		for j, cell := range row {
			if j > 0 {
				if _, err := io.WriteString(w, ","); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, quote(cell)); err != nil {
				return err
			}
		}
	}
	return nil
}

func quote(cell string) string {
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}
