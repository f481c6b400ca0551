package clone_test

import (
	"bytes"
	"image"
	"image/color"
	"mime/multipart"
	"net/textproto"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrbench/pkg/clone"
)

type entry struct {
	ID    string
	Score float64
	Tags  []string
}

type inner struct {
	items map[string]int
	tags  []string
	next  *entry
	when  time.Time
}

type sealed struct {
	Name  string
	state inner
	ptr   *inner
}

type record struct {
	Name     string
	Entries  []entry
	Index    map[string]*entry
	Seen     map[string]struct{}
	Created  time.Time
	Pattern  *regexp.Regexp
	Payload  []byte
	Any      any
	Callback func() int
	hidden   int
}

func newRecord() record {
	e := &entry{ID: "a", Score: 1, Tags: []string{"x"}}
	return record{
		Name:     "root",
		Entries:  []entry{{ID: "b", Score: 2, Tags: []string{"y", "z"}}},
		Index:    map[string]*entry{"a": e},
		Seen:     map[string]struct{}{"qrcode": {}},
		Created:  time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Pattern:  regexp.MustCompile(`^qr-\d+$`),
		Payload:  []byte("png"),
		Any:      map[string]any{"nested": []int{1, 2}},
		Callback: func() int { return 42 },
		hidden:   7,
	}
}

func TestDeep_Scalars(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 10, clone.Deep(10))
	assert.Equal(t, "qr", clone.Deep("qr"))
	assert.Equal(t, 1.5, clone.Deep(1.5))
	assert.True(t, clone.Deep(true))

	var nilAny any
	assert.Nil(t, clone.Deep(nilAny))

	var nilMap map[string]int
	assert.Nil(t, clone.Deep(nilMap))
}

func TestDeep_Isolation(t *testing.T) {
	t.Parallel()

	t.Run("nested records", func(t *testing.T) {
		t.Parallel()
		orig := newRecord()
		cp := clone.Deep(orig)

		require.Equal(t, orig.Name, cp.Name)
		require.Equal(t, orig.Entries, cp.Entries)

		cp.Entries[0].Tags[0] = "changed"
		cp.Entries[0].Score = 100
		cp.Index["a"].ID = "mutated"

		assert.Equal(t, "y", orig.Entries[0].Tags[0])
		assert.Equal(t, 2.0, orig.Entries[0].Score)
		assert.Equal(t, "a", orig.Index["a"].ID)
		assert.NotSame(t, orig.Index["a"], cp.Index["a"])
	})

	t.Run("sequences", func(t *testing.T) {
		t.Parallel()
		orig := [][]int{{1, 2}, {3}}
		cp := clone.Deep(orig)

		cp[0][0] = 99
		cp[1] = append(cp[1], 4)

		assert.Equal(t, [][]int{{1, 2}, {3}}, orig)
	})

	t.Run("keyed and unique collections", func(t *testing.T) {
		t.Parallel()
		orig := newRecord()
		cp := clone.Deep(orig)

		cp.Seen["qrcode.react"] = struct{}{}
		delete(cp.Index, "a")

		assert.Len(t, orig.Seen, 1)
		assert.Contains(t, orig.Index, "a")
	})

	t.Run("temporal values", func(t *testing.T) {
		t.Parallel()
		orig := newRecord()
		cp := clone.Deep(orig)

		require.True(t, orig.Created.Equal(cp.Created))
		cp.Created = cp.Created.Add(time.Hour)
		assert.Equal(t, 3, orig.Created.Hour())
	})

	t.Run("pattern matchers", func(t *testing.T) {
		t.Parallel()
		orig := newRecord()
		cp := clone.Deep(orig)

		require.NotSame(t, orig.Pattern, cp.Pattern)
		assert.Equal(t, orig.Pattern.String(), cp.Pattern.String())
		assert.True(t, cp.Pattern.MatchString("qr-12"))
	})

	t.Run("byte buffers", func(t *testing.T) {
		t.Parallel()
		orig := newRecord()
		cp := clone.Deep(orig)

		cp.Payload[0] = 'j'
		assert.Equal(t, []byte("png"), orig.Payload)

		buf := bytes.NewBufferString("svg")
		bufCopy := clone.Deep(buf)
		bufCopy.WriteString("-more")
		assert.Equal(t, "svg", buf.String())
		assert.Equal(t, "svg-more", bufCopy.String())
	})

	t.Run("interfaces", func(t *testing.T) {
		t.Parallel()
		orig := newRecord()
		cp := clone.Deep(orig)

		nested := cp.Any.(map[string]any)["nested"].([]int)
		nested[0] = 100
		assert.Equal(t, []int{1, 2}, orig.Any.(map[string]any)["nested"])
	})

	t.Run("pixel buffers", func(t *testing.T) {
		t.Parallel()
		img := image.NewRGBA(image.Rect(0, 0, 2, 2))
		img.Set(0, 0, color.RGBA{R: 255, A: 255})

		cp := clone.Deep(img)
		cp.Set(0, 0, color.RGBA{B: 255, A: 255})

		assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(0, 0))
		assert.Equal(t, img.Rect, cp.Rect)
	})
}

func TestDeep_PassThrough(t *testing.T) {
	t.Parallel()

	orig := newRecord()
	cp := clone.Deep(orig)

	require.NotNil(t, cp.Callback)
	assert.Equal(t, 42, cp.Callback())
	assert.Equal(t, 7, cp.hidden)
}

func TestDeep_UnexportedFields(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	orig := sealed{
		Name: "a",
		state: inner{
			items: map[string]int{"x": 1},
			tags:  []string{"t"},
			next:  &entry{ID: "n", Tags: []string{"deep"}},
			when:  created,
		},
		ptr: &inner{items: map[string]int{"y": 2}},
	}

	cp := clone.Deep(orig)
	cp.state.items["x"] = 99
	cp.state.tags[0] = "changed"
	cp.state.next.Tags[0] = "changed"
	cp.ptr.items["y"] = 99

	assert.Equal(t, 1, orig.state.items["x"])
	assert.Equal(t, "t", orig.state.tags[0])
	assert.Equal(t, "deep", orig.state.next.Tags[0])
	assert.Equal(t, 2, orig.ptr.items["y"])
	assert.NotSame(t, orig.state.next, cp.state.next)
	assert.True(t, created.Equal(cp.state.when))

	// Values nested in maps and interfaces are not addressable.
	wrapped := map[string]any{"s": orig}
	wcp := clone.Deep(wrapped)
	wcp["s"].(sealed).state.items["x"] = 42
	assert.Equal(t, 1, orig.state.items["x"])
}

func TestDeep_MapKeysKeepIdentity(t *testing.T) {
	t.Parallel()

	k := &entry{ID: "key"}
	orig := map[*entry]string{k: "v"}
	cp := clone.Deep(orig)

	v, ok := cp[k]
	require.True(t, ok)
	assert.Equal(t, "v", v)
	assert.Len(t, cp, 1)

	cp[k] = "changed"
	assert.Equal(t, "v", orig[k])
}

func TestDeep_Paletted(t *testing.T) {
	t.Parallel()

	pal := color.Palette{color.Black, color.White}
	img := image.NewPaletted(image.Rect(0, 0, 2, 2), pal)
	img.SetColorIndex(0, 0, 1)

	cp := clone.Deep(img)
	require.NotSame(t, img, cp)
	cp.SetColorIndex(0, 0, 0)
	cp.Palette[1] = color.Gray{Y: 128}

	assert.Equal(t, uint8(1), img.ColorIndexAt(0, 0))
	assert.Equal(t, color.White, img.Palette[1])
	assert.Equal(t, img.Rect, cp.Rect)
}

func TestDeep_FileHeader(t *testing.T) {
	t.Parallel()

	orig := &multipart.FileHeader{
		Filename: "logo.png",
		Size:     3,
		Header:   textproto.MIMEHeader{"Content-Type": {"image/png"}},
	}

	cp := clone.Deep(orig)
	require.NotSame(t, orig, cp)
	assert.Equal(t, orig.Filename, cp.Filename)
	assert.Equal(t, orig.Size, cp.Size)

	cp.Header["Content-Type"][0] = "image/gif"
	cp.Header.Set("X-Extra", "1")
	assert.Equal(t, "image/png", orig.Header.Get("Content-Type"))
	assert.Empty(t, orig.Header.Get("X-Extra"))
}

func TestDeep_Pointer(t *testing.T) {
	t.Parallel()

	orig := &entry{ID: "p", Tags: []string{"t"}}
	cp := clone.Deep(orig)

	require.NotSame(t, orig, cp)
	assert.Equal(t, *orig, *cp)

	cp.Tags[0] = "changed"
	assert.Equal(t, "t", orig.Tags[0])

	var nilPtr *entry
	assert.Nil(t, clone.Deep(nilPtr))
}
