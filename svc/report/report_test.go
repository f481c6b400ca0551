package report_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrbench/pkg/file"
	"github.com/dmitrymomot/qrbench/pkg/qrcode"
	"github.com/dmitrymomot/qrbench/svc/qrstate"
	"github.com/dmitrymomot/qrbench/svc/report"
)

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func metrics() []qrstate.GenerationMetric {
	return []qrstate.GenerationMetric{
		{ID: "a", RenderTime: 10, MemoryUsage: 1000, FileSize: 500, Timestamp: fixedNow, Value: "hello", Size: 240},
		{ID: "b", RenderTime: 20, MemoryUsage: 3000, FileSize: 700, Timestamp: fixedNow.Add(time.Second), Value: "hello", Size: 240, Logo: "data:image/png;base64,AA=="},
	}
}

func TestNewPerformance(t *testing.T) {
	t.Parallel()

	p := report.NewPerformance("go-qrcode", metrics(), fixedNow)
	assert.Equal(t, "go-qrcode", p.PackageName)
	assert.Equal(t, 2, p.TotalGenerations)
	require.Len(t, p.Metrics, 2)
	assert.False(t, p.Metrics[0].HasLogo)
	assert.True(t, p.Metrics[1].HasLogo)

	assert.InDelta(t, 15, p.Summary.AverageRenderTime, 1e-9)
	assert.InDelta(t, 2000, p.Summary.AverageMemoryUsage, 1e-9)
	assert.InDelta(t, 600, p.Summary.AverageFileSize, 1e-9)
	assert.Equal(t, 10.0, p.Summary.MinRenderTime)
	assert.Equal(t, 20.0, p.Summary.MaxRenderTime)

	empty := report.NewPerformance("x", nil, fixedNow)
	assert.Zero(t, empty.TotalGenerations)
	assert.Empty(t, empty.Metrics)
	assert.Equal(t, report.Summary{}, empty.Summary)
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf, report.NewPerformance("go-qrcode", metrics(), fixedNow)))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "go-qrcode", doc["packageName"])
	assert.Equal(t, "2026-03-14T09:26:53Z", doc["exportDate"])
	assert.EqualValues(t, 2, doc["totalGenerations"])
	assert.Contains(t, doc, "summary")

	items := doc["metrics"].([]any)
	first := items[0].(map[string]any)
	assert.Equal(t, false, first["hasLogo"])
	assert.NotContains(t, first, "logo")
	assert.NotContains(t, first, "dataURL")
	assert.Contains(t, buf.String(), "\n  \"packageName\"")
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	ms := metrics()
	ms[0].Value = `say "hi"`

	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, report.NewPerformance("go-qrcode", ms, fixedNow)))

	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `"ID","Package","Render Time (ms)","Memory Usage (bytes)","File Size (bytes)","Timestamp","Content Length","QR Size","Has Logo"`, lines[0])
	assert.Equal(t, `"a","go-qrcode","10.000","1000","500","2026-03-14T09:26:53.000Z","8","240","No"`, lines[1])
	assert.True(t, strings.HasSuffix(lines[2], `"Yes"`))
}

func TestFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pkg     string
		content string
		logo    bool
		want    string
	}{
		{"url", "go-qrcode", "https://github.com/ngvcanh/qrcode-generation", false, "qrcode-go-qrcode-https-github-com-n-2026-03-14"},
		{"logo", "boombuler-barcode", "hello", true, "qrcode-boombuler-barcode-hello-with-logo-2026-03-14"},
		{"scoped package", "@scope/pkg", "x", false, "qrcode--scope-pkg-x-2026-03-14"},
		{"empty preview", "lib", "!!!", false, "qrcode-lib-2026-03-14"},
		{"non-ascii preview", "lib", "héllo wörld, long enough to cut", false, "qrcode-lib-h-llo-w-rld-long-enoug-2026-03-14"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, report.Filename(tt.pkg, tt.content, tt.logo, fixedNow))
		})
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0 B", report.FormatBytes(0))
	assert.Equal(t, "0 B", report.FormatBytes(-5))
	assert.Equal(t, "512 B", report.FormatBytes(512))
	assert.Equal(t, "1 KB", report.FormatBytes(1024))
	assert.Equal(t, "1.5 KB", report.FormatBytes(1536))
	assert.Equal(t, "1.21 MB", report.FormatBytes(1.21*1024*1024))
	assert.Equal(t, "2048 GB", report.FormatBytes(2*1024*1024*1024*1024))
}

func TestFormatTime(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "500.00μs", report.FormatTime(0.5))
	assert.Equal(t, "12.35ms", report.FormatTime(12.346))
	assert.Equal(t, "1.50s", report.FormatTime(1500))
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1,234,568", report.FormatNumber(1234567.8))
	assert.Equal(t, "42", report.FormatNumber(42))
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, err := report.ParseFormat(" CSV ")
	require.NoError(t, err)
	assert.Equal(t, report.FormatCSV, f)
	assert.Equal(t, "text/csv", f.ContentType())
	assert.False(t, f.IsImage())

	f, err = report.ParseFormat("svg")
	require.NoError(t, err)
	assert.True(t, f.IsImage())

	_, err = report.ParseFormat("xml")
	assert.ErrorIs(t, err, report.ErrUnknownFormat)
}

func pngDataURL(t *testing.T, size int) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, size, size))))
	return qrcode.EncodeDataURL(qrcode.MIMEPNG, buf.Bytes())
}

func TestImage(t *testing.T) {
	t.Parallel()

	raster := qrstate.GenerationMetric{DataURL: pngDataURL(t, 32), Size: 240}
	vector := qrstate.GenerationMetric{DataURL: qrcode.EncodeDataURL(qrcode.MIMESVG, []byte("<svg/>"))}

	data, err := report.Image(raster, report.FormatPNG)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data[:4])

	data, err = report.Image(raster, report.FormatSVG)
	require.NoError(t, err)
	assert.Contains(t, string(data), `width="32" height="32"`)
	assert.Contains(t, string(data), "data:image/png;base64,")

	data, err = report.Image(vector, report.FormatSVG)
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))

	_, err = report.Image(vector, report.FormatPNG)
	assert.ErrorIs(t, err, report.ErrUnsupportedType)

	_, err = report.Image(qrstate.GenerationMetric{}, report.FormatPNG)
	assert.ErrorIs(t, err, report.ErrNoImage)

	_, err = report.Image(raster, report.FormatCSV)
	assert.ErrorIs(t, err, report.ErrUnknownFormat)
}

type failingStorage struct{ file.Storage }

func (failingStorage) Put(context.Context, string, []byte, string) (*file.File, error) {
	return nil, errors.New("disk full")
}

func TestExporter(t *testing.T) {
	t.Parallel()

	storage, err := file.NewLocalStorage(t.TempDir(), "/artifacts")
	require.NoError(t, err)
	exp := report.NewExporter(storage, report.WithClock(func() time.Time { return fixedNow }))
	ctx := context.Background()

	ms := metrics()
	ms[1].DataURL = pngDataURL(t, 16)
	stack := qrstate.MetricStack{Stack: ms, Metrics: qrstate.Calculate(ms)}

	t.Run("csv report", func(t *testing.T) {
		t.Parallel()
		f, err := exp.Export(ctx, "go-qrcode", stack, report.FormatCSV)
		require.NoError(t, err)
		assert.Equal(t, "reports/go-qrcode-performance-data-2026-03-14.csv", f.Path)
		assert.Equal(t, "text/csv", f.MIMEType)

		data, err := storage.Get(ctx, f.Path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), `"ID"`))
	})

	t.Run("svg image", func(t *testing.T) {
		t.Parallel()
		f, err := exp.Export(ctx, "go-qrcode", stack, report.FormatSVG)
		require.NoError(t, err)
		assert.Equal(t, "images/qrcode-go-qrcode-hello-with-logo-2026-03-14.svg", f.Path)
	})

	t.Run("empty stack image", func(t *testing.T) {
		t.Parallel()
		_, err := exp.Export(ctx, "go-qrcode", qrstate.MetricStack{}, report.FormatPNG)
		assert.ErrorIs(t, err, report.ErrNoImage)
	})

	t.Run("storage failure", func(t *testing.T) {
		t.Parallel()
		bad := report.NewExporter(failingStorage{})
		_, err := bad.Export(ctx, "go-qrcode", stack, report.FormatJSON)
		assert.ErrorIs(t, err, report.ErrStore)
	})
}
