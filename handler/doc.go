// Package handler provides typed HTTP handlers and the response types used
// by the API.
//
// A HandlerFunc receives the request and a value populated by binders and
// returns a Response:
//
//	h := handler.Wrap(func(r *http.Request, req PatchState) handler.Response {
//		return handler.JSON(apply(req))
//	}, handler.WithBinders[PatchState](handler.BindJSON()))
//
// Errors from binders and renderers go to the ErrorHandler. The default one
// writes the JSON envelope {data, meta, error{code, message}} with the
// status of an HTTPError, or 500 for any other error.
package handler
