// Package subimport converts external subtitle files to the internal shape.
//
// Two inputs are accepted, picked by file extension: JSON arrays exported by
// the splitting pipeline and plain SRT files. Both paths are lenient at the
// record level: a malformed record or cue block is dropped and the rest of
// the file imports, because partially usable exports are the norm. A payload
// that is not usable at all fails with an error wrapping ErrImport and leaves
// the caller's state untouched.
package subimport
