package file_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrbench/pkg/file"
)

type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func (m *MockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadObjectOutput), args.Error(1)
}

func (m *MockS3Client) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.ListObjectsV2Output), args.Error(1)
}

func (m *MockS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectOutput), args.Error(1)
}

func newS3(t *testing.T, client file.S3Client) *file.S3Storage {
	t.Helper()
	s, err := file.NewS3Storage(context.Background(), file.S3Config{
		Bucket: "artifacts",
		Region: "us-east-1",
	}, file.WithS3Client(client))
	require.NoError(t, err)
	return s
}

func TestNewS3Storage(t *testing.T) {
	t.Parallel()

	t.Run("requires bucket and region", func(t *testing.T) {
		t.Parallel()
		_, err := file.NewS3Storage(context.Background(), file.S3Config{Bucket: "b"})
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
	})

	t.Run("derives URL from endpoint", func(t *testing.T) {
		t.Parallel()
		s, err := file.NewS3Storage(context.Background(), file.S3Config{
			Bucket:   "b",
			Region:   "us-east-1",
			Endpoint: "http://localhost:9000/",
		}, file.WithS3Client(&MockS3Client{}))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9000/b/reports/a.csv", s.URL("/reports/a.csv"))
	})

	t.Run("derives URL from region", func(t *testing.T) {
		t.Parallel()
		s := newS3(t, &MockS3Client{})
		assert.Equal(t, "https://artifacts.s3.us-east-1.amazonaws.com/x.png", s.URL("x.png"))
	})
}

func TestS3StoragePut(t *testing.T) {
	t.Parallel()

	t.Run("uploads with content type", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			return aws.ToString(in.Bucket) == "artifacts" &&
				aws.ToString(in.Key) == "reports/a.json" &&
				aws.ToString(in.ContentType) == "application/json" &&
				aws.ToInt64(in.ContentLength) == 2
		}), mock.Anything).Return(&s3.PutObjectOutput{}, nil)

		f, err := newS3(t, client).Put(context.Background(), "/reports/a.json", []byte("{}"), "application/json")
		require.NoError(t, err)
		assert.Equal(t, "reports/a.json", f.Path)
		assert.Equal(t, int64(2), f.Size)
		assert.Contains(t, f.URL, "reports/a.json")
		client.AssertExpectations(t)
	})

	t.Run("rejects traversal", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		_, err := newS3(t, client).Put(context.Background(), "../secret", []byte("x"), "")
		assert.ErrorIs(t, err, file.ErrInvalidPath)
		client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("classifies access denied", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "AccessDenied", Message: "nope"})

		_, err := newS3(t, client).Put(context.Background(), "a.png", []byte("x"), "image/png")
		assert.ErrorIs(t, err, file.ErrAccessDenied)
	})

	t.Run("classifies throttling", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "SlowDown"})

		_, err := newS3(t, client).Put(context.Background(), "a.png", []byte("x"), "image/png")
		assert.ErrorIs(t, err, file.ErrServiceUnavailable)
	})

	t.Run("classifies context deadline", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, context.DeadlineExceeded)

		_, err := newS3(t, client).Put(context.Background(), "a.png", []byte("x"), "image/png")
		assert.ErrorIs(t, err, file.ErrOperationTimeout)
	})
}

func TestS3StorageGet(t *testing.T) {
	t.Parallel()

	t.Run("reads body", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("GetObject", mock.Anything, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
			return aws.ToString(in.Key) == "qr/a.svg"
		}), mock.Anything).Return(&s3.GetObjectOutput{
			Body: io.NopCloser(bytes.NewReader([]byte("<svg/>"))),
		}, nil)

		data, err := newS3(t, client).Get(context.Background(), "qr/a.svg")
		require.NoError(t, err)
		assert.Equal(t, "<svg/>", string(data))
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &types.NoSuchKey{})

		_, err := newS3(t, client).Get(context.Background(), "qr/missing.svg")
		assert.ErrorIs(t, err, file.ErrFileNotFound)
	})

	t.Run("missing bucket", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &types.NoSuchBucket{})

		_, err := newS3(t, client).Get(context.Background(), "qr/a.svg")
		assert.ErrorIs(t, err, file.ErrBucketNotFound)
	})
}

func TestS3StorageDelete(t *testing.T) {
	t.Parallel()

	t.Run("deletes existing object", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).Return(&s3.HeadObjectOutput{}, nil)
		client.On("DeleteObject", mock.Anything, mock.MatchedBy(func(in *s3.DeleteObjectInput) bool {
			return aws.ToString(in.Key) == "a.csv"
		}), mock.Anything).Return(&s3.DeleteObjectOutput{}, nil)

		require.NoError(t, newS3(t, client).Delete(context.Background(), "a.csv"))
		client.AssertExpectations(t)
	})

	t.Run("missing object", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, &types.NotFound{})

		err := newS3(t, client).Delete(context.Background(), "a.csv")
		assert.ErrorIs(t, err, file.ErrFileNotFound)
		client.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestS3StorageExists(t *testing.T) {
	t.Parallel()

	client := &MockS3Client{}
	client.On("HeadObject", mock.Anything, mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
		return aws.ToString(in.Key) == "yes"
	}), mock.Anything).Return(&s3.HeadObjectOutput{}, nil)
	client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("not found"))

	s := newS3(t, client)
	assert.True(t, s.Exists(context.Background(), "yes"))
	assert.False(t, s.Exists(context.Background(), "no"))
	assert.False(t, s.Exists(context.Background(), "../yes"))
}

func TestS3StorageList(t *testing.T) {
	t.Parallel()

	client := &MockS3Client{}
	client.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
		return aws.ToString(in.Prefix) == "reports/" && aws.ToString(in.Delimiter) == "/"
	}), mock.Anything).Return(&s3.ListObjectsV2Output{
		CommonPrefixes: []types.CommonPrefix{{Prefix: aws.String("reports/2026/")}},
		Contents: []types.Object{
			{Key: aws.String("reports/"), Size: aws.Int64(0)},
			{Key: aws.String("reports/a.csv"), Size: aws.Int64(12)},
		},
	}, nil)

	entries, err := newS3(t, client).List(context.Background(), "/reports")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, file.Entry{Name: "2026", Path: "reports/2026", IsDir: true}, entries[0])
	assert.Equal(t, file.Entry{Name: "a.csv", Path: "reports/a.csv", Size: 12}, entries[1])
}

func TestConfigS3Options(t *testing.T) {
	t.Parallel()

	assert.Empty(t, file.Config{}.S3Options())
	assert.Len(t, file.Config{
		S3UploadTimeout:        time.Second,
		S3MaxAttempts:          2,
		S3ChecksumWhenRequired: true,
	}.S3Options(), 3)
}

func TestNewAppliesUploadTimeout(t *testing.T) {
	t.Parallel()

	client := &MockS3Client{}
	client.On("PutObject", mock.MatchedBy(func(ctx context.Context) bool {
		deadline, ok := ctx.Deadline()
		return ok && time.Until(deadline) <= time.Minute
	}), mock.Anything, mock.Anything).Return(&s3.PutObjectOutput{}, nil)

	s, err := file.New(context.Background(), file.Config{
		Driver:          file.DriverS3,
		S3Bucket:        "artifacts",
		S3Region:        "us-east-1",
		S3UploadTimeout: time.Minute,
	}, file.WithS3Client(client))
	require.NoError(t, err)

	_, err = s.Put(context.Background(), "reports/a.json", []byte("{}"), "application/json")
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestNewS3AgainstEndpoint(t *testing.T) {
	t.Parallel()

	newStorage := func(t *testing.T, srv *httptest.Server, attempts int) file.Storage {
		t.Helper()
		s, err := file.New(context.Background(), file.Config{
			Driver:                 file.DriverS3,
			S3Bucket:               "artifacts",
			S3Region:               "us-east-1",
			S3AccessKeyID:          "key",
			S3SecretKey:            "secret",
			S3Endpoint:             srv.URL,
			S3ForcePathStyle:       true,
			S3MaxAttempts:          attempts,
			S3ChecksumWhenRequired: true,
		}, file.WithHTTPClient(srv.Client()))
		require.NoError(t, err)
		return s
	}

	t.Run("skips optional checksums", func(t *testing.T) {
		t.Parallel()
		var (
			path     atomic.Value
			checksum atomic.Value
		)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path.Store(r.URL.Path)
			checksum.Store(r.Header.Get("X-Amz-Checksum-Crc32") + r.Header.Get("X-Amz-Sdk-Checksum-Algorithm"))
			_, _ = io.Copy(io.Discard, r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		t.Cleanup(srv.Close)

		f, err := newStorage(t, srv, 1).Put(context.Background(), "reports/a.json", []byte("{}"), "application/json")
		require.NoError(t, err)
		assert.Equal(t, "reports/a.json", f.Path)
		assert.Equal(t, "/artifacts/reports/a.json", path.Load())
		assert.Empty(t, checksum.Load())
	})

	t.Run("retries up to max attempts", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			_, _ = io.Copy(io.Discard, r.Body)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		t.Cleanup(srv.Close)

		_, err := newStorage(t, srv, 2).Put(context.Background(), "reports/a.json", []byte("{}"), "application/json")
		require.Error(t, err)
		assert.Equal(t, int32(2), calls.Load())
	})
}
