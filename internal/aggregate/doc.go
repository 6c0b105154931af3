// Package aggregate holds one video's subtitle tree in memory for editing.
//
// An Aggregate deep-copies the video it is built from and applies edits
// through operations that keep three invariants: segment indexes are a
// contiguous 0-based run within their pack, subtitle lists stay sorted by
// start time after inserts and updates, and language codes are unique per
// video. Operations are all-or-nothing; a precondition failure (unknown
// coordinates, duplicate language) leaves the tree untouched.
//
// Edits are tracked per sub-tree (languages, original_subtitles,
// new_subtitles) so persistence can write only what changed. The model is
// single-writer: one actor edits one aggregate, and the store stays the
// source of truth; callers refetch after saving.
package aggregate
