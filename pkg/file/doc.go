// Package file stores generated artifacts (exported reports and QR images)
// and validates uploaded logo files.
//
// Two Storage backends are provided:
//
//   - LocalStorage writes below a base directory and refuses paths that
//     escape it.
//   - S3Storage writes to Amazon S3 or any S3-compatible service through
//     github.com/aws/aws-sdk-go-v2. The S3Client interface allows tests to
//     substitute the SDK client.
//
// New picks a backend from Config, which is populated from the environment:
//
//	var cfg file.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//	store, err := file.New(ctx, cfg)
//
// S3 failures are classified into the sentinel errors of this package
// (ErrFileNotFound, ErrAccessDenied, ErrServiceUnavailable and so on) so
// callers can use errors.Is regardless of the backend.
package file
