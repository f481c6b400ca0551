// Package notify carries user-facing notifications: toasts with a severity
// and a global loading indicator.
//
// Notifications are fanned out through a pkg/broadcast feed so that any
// number of consumers (the SSE stream, the CLI progress printer) can follow
// them. Publishing never blocks; a lagging consumer loses its oldest queued
// events and keeps receiving new ones.
package notify
