package registry_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrbench/svc/registry"
)

const qrcodeDoc = `{
  "name": "qrcode",
  "description": "QRCode / 2d Barcode api with both server side and client side support using canvas",
  "dist-tags": {"latest": "1.5.4"},
  "license": "MIT",
  "readme": "# node-qrcode",
  "author": {"name": "soldair", "email": "soldair@example.com"},
  "keywords": ["qr", "barcode"],
  "time": {"1.5.4": "2024-08-01T10:20:30.123Z"},
  "versions": {
    "1.5.4": {
      "dist": {"unpackedSize": 135000},
      "dependencies": {"dijkstrajs": "^1.0.1", "pngjs": "^5.0.0"},
      "repository": "git://github.com/soldair/node-qrcode.git",
      "homepage": "http://github.com/soldair/node-qrcode"
    }
  }
}`

const weeklyDoc = `{"downloads": 4200, "start": "2024-08-01", "end": "2024-08-07", "package": "qrcode"}`

const rangeDoc = `{"downloads": [{"downloads": 10, "day": "2024-08-01"}, {"downloads": 15, "day": "2024-08-02"}],
  "start": "2024-08-01", "end": "2024-08-02", "package": "qrcode"}`

type upstream struct {
	registry  atomic.Int32
	downloads atomic.Int32
	failDL    bool
	failReg   int32 // number of leading registry requests answered with 503
}

func (u *upstream) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/registry/{name}", func(w http.ResponseWriter, r *http.Request) {
		n := u.registry.Add(1)
		if n <= u.failReg {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		switch r.PathValue("name") {
		case "qrcode":
			_, _ = w.Write([]byte(qrcodeDoc))
		case "broken":
			_, _ = w.Write([]byte(`{"name": "broken", "dist-tags": {"latest": "9.9.9"}, "versions": {}}`))
		default:
			http.NotFound(w, r)
		}
	})
	mux.HandleFunc("/downloads/point/last-week/{name}", func(w http.ResponseWriter, _ *http.Request) {
		u.downloads.Add(1)
		if u.failDL {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(weeklyDoc))
	})
	mux.HandleFunc("/downloads/range/last-month/{name}", func(w http.ResponseWriter, _ *http.Request) {
		u.downloads.Add(1)
		if u.failDL {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(rangeDoc))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(srv *httptest.Server, cfg registry.Config) *registry.Client {
	cfg.RegistryURL = srv.URL + "/registry"
	cfg.DownloadsURL = srv.URL + "/downloads/"
	return registry.New(cfg, registry.WithBackoff(registry.FixedBackoff{Interval: time.Millisecond}))
}

func TestPackageInfo(t *testing.T) {
	t.Parallel()

	t.Run("combines registry and downloads", func(t *testing.T) {
		t.Parallel()
		u := &upstream{}
		c := newClient(u.server(t), registry.Config{})

		info, err := c.PackageInfo(context.Background(), "qrcode")
		require.NoError(t, err)

		assert.Equal(t, "qrcode", info.Name)
		assert.Equal(t, "1.5.4", info.Version)
		assert.Equal(t, "MIT", info.License)
		assert.Equal(t, int64(135000), info.UnpackedSize)
		assert.Equal(t, map[string]string{"dijkstrajs": "^1.0.1", "pngjs": "^5.0.0"}, info.Dependencies)
		require.NotNil(t, info.Repository)
		assert.Equal(t, "git://github.com/soldair/node-qrcode.git", info.Repository.URL)
		require.NotNil(t, info.Author)
		assert.Equal(t, "soldair", info.Author.Name)
		assert.Equal(t, []string{"qr", "barcode"}, info.Keywords)
		assert.Equal(t, "http://github.com/soldair/node-qrcode", info.Homepage)
		assert.Equal(t, "# node-qrcode", info.Readme)
		require.NotNil(t, info.LastPublish)
		assert.Equal(t, 2024, info.LastPublish.Year())
		assert.Equal(t, int64(4200), info.WeeklyDownloads)
		require.NotNil(t, info.DownloadStats)
		assert.Equal(t, int64(25), info.DownloadStats.Total())
	})

	t.Run("download failures are tolerated", func(t *testing.T) {
		t.Parallel()
		u := &upstream{failDL: true}
		c := newClient(u.server(t), registry.Config{})

		info, err := c.PackageInfo(context.Background(), "qrcode")
		require.NoError(t, err)
		assert.Zero(t, info.WeeklyDownloads)
		assert.Nil(t, info.DownloadStats)
	})

	t.Run("results are cached", func(t *testing.T) {
		t.Parallel()
		u := &upstream{}
		c := newClient(u.server(t), registry.Config{})

		_, err := c.PackageInfo(context.Background(), "qrcode")
		require.NoError(t, err)
		_, err = c.PackageInfo(context.Background(), "qrcode")
		require.NoError(t, err)

		assert.Equal(t, int32(1), u.registry.Load())
		assert.Equal(t, int32(2), u.downloads.Load())
	})

	t.Run("unknown package", func(t *testing.T) {
		t.Parallel()
		u := &upstream{}
		c := newClient(u.server(t), registry.Config{})

		_, err := c.PackageInfo(context.Background(), "does-not-exist")
		require.ErrorIs(t, err, registry.ErrPackageNotFound)
	})

	t.Run("missing version data", func(t *testing.T) {
		t.Parallel()
		u := &upstream{}
		c := newClient(u.server(t), registry.Config{})

		_, err := c.PackageInfo(context.Background(), "broken")
		require.ErrorIs(t, err, registry.ErrNoVersionData)
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()
		c := registry.New(registry.Config{})
		_, err := c.PackageInfo(context.Background(), "has space")
		require.ErrorIs(t, err, registry.ErrInvalidName)
		_, err = c.PackageInfo(context.Background(), "")
		require.ErrorIs(t, err, registry.ErrInvalidName)
	})

	t.Run("transient failures are retried", func(t *testing.T) {
		t.Parallel()
		u := &upstream{failReg: 2}
		c := newClient(u.server(t), registry.Config{Retries: 2, BreakerThreshold: 10})

		info, err := c.PackageInfo(context.Background(), "qrcode")
		require.NoError(t, err)
		assert.Equal(t, "qrcode", info.Name)
		assert.Equal(t, int32(3), u.registry.Load())
	})

	t.Run("negative retries mean a single attempt", func(t *testing.T) {
		t.Parallel()
		u := &upstream{failReg: 1}
		c := newClient(u.server(t), registry.Config{Retries: -3, BreakerThreshold: 10})

		_, err := c.PackageInfo(context.Background(), "qrcode")
		require.ErrorIs(t, err, registry.ErrUnexpectedStatus)
		assert.Equal(t, int32(1), u.registry.Load())
	})

	t.Run("breaker fails fast", func(t *testing.T) {
		t.Parallel()
		u := &upstream{failReg: 100, failDL: true}
		c := newClient(u.server(t), registry.Config{Retries: 0, BreakerThreshold: 1, BreakerRecovery: time.Hour})

		_, err := c.PackageInfo(context.Background(), "qrcode")
		require.ErrorIs(t, err, registry.ErrUnexpectedStatus)

		_, err = c.PackageInfo(context.Background(), "qrcode")
		require.ErrorIs(t, err, registry.ErrUnavailable)
		assert.Equal(t, int32(1), u.registry.Load())
	})
}

func TestDownloads(t *testing.T) {
	t.Parallel()

	u := &upstream{}
	c := newClient(u.server(t), registry.Config{})

	weekly, err := c.WeeklyDownloads(context.Background(), "qrcode")
	require.NoError(t, err)
	assert.Equal(t, int64(4200), weekly.Downloads)
	assert.Equal(t, "qrcode", weekly.Package)

	stats, err := c.DownloadRange(context.Background(), "qrcode", registry.PeriodLastMonth)
	require.NoError(t, err)
	require.Len(t, stats.Downloads, 2)
	assert.Equal(t, "2024-08-02", stats.Downloads[1].Day)
}

func TestExponentialBackoff(t *testing.T) {
	t.Parallel()

	b := registry.ExponentialBackoff{InitialInterval: 100 * time.Millisecond, MaxInterval: time.Second, Multiplier: 2}
	assert.Zero(t, b.NextInterval(0))
	assert.Equal(t, 100*time.Millisecond, b.NextInterval(1))
	assert.Equal(t, 400*time.Millisecond, b.NextInterval(3))
	assert.Equal(t, time.Second, b.NextInterval(10))
}
