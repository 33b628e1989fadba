// Package poller provides the HTTP client used to poll the timecode server.
//
// The client issues GET and POST requests under a fixed 2-second timeout
// and classifies every result into an [Outcome]: success, HTTP error,
// transport error, or unexpected failure. Errors are carried inside the
// outcome rather than returned separately, so a result is always a single
// value that can be queued and handed across goroutines.
//
// This package is internal to timecast; configuration and scheduling live
// in the root package.
package poller
