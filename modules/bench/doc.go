// Package bench exposes the benchmark over HTTP.
//
// The router is built on chi and the handler package:
//
//	GET    /state                          settings, aggregates and run status
//	PATCH  /state                          update value, size, iterations or style
//	GET    /logo, PUT /logo, DELETE /logo  logo image (multipart or data URL)
//	POST   /generate                       start a batch (202, 409 when busy)
//	DELETE /stacks                         drop all recorded metrics
//	GET    /stacks/{library}               metric history of one library
//	GET    /stacks/{library}/current       current QR image (?format=png|svg)
//	GET    /stacks/{library}/export.{fmt}  json, csv, png or svg (?store=1 persists)
//	GET    /artifacts?dir=reports|images   stored artifacts
//	GET    /packages/*                     registry package info
//	GET    /events                         datastar stream of state and notifications
//	GET    /healthz                        readiness
//
// Usage:
//
//	m := bench.New(st, runner, notifier,
//		bench.WithPackages(registryClient),
//		bench.WithExporter(report.NewExporter(storage)),
//	)
//	srv.Run(ctx, m.Handle())
package bench
