// Package timecode converts between subtitle time representations and
// canonical seconds.
//
// Three textual forms are understood: the editor display format MM:SS.mmm
// (minutes unbounded), the SRT timestamp HH:MM:SS,mmm, and a bare numeric
// seconds value. Parse is lenient and defaults malformed input to zero so
// import paths stay resilient to bad external data; ParseStrict reports a
// ParseError instead for callers that need to surface the failure.
package timecode
