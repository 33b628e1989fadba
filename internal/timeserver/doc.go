// Package timeserver implements the timecode server that timecast polls.
//
// It serves GET /timecode with a JSON body carrying a display_text field,
// formatted according to the configuration clients push via POST /config:
// time mode, optional date, UTC, frame counter, and pre/post text. Time can
// be disciplined by NTP via [NTPProvider].
//
// A standalone binary lives under example/cmd/timeserver.
package timeserver
