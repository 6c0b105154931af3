// Package subtitle defines the video subtitle data model.
//
// A video carries two generations of subtitle data at once: the legacy flat
// arrays (original_subtitles, new_subtitles) attached directly to the video,
// and the nested languages tree of per-language segment lists where each
// segment owns its own subtitle lines. The two shapes were never migrated
// into one another and are persisted independently; both stay first-class
// here. Field names keep the wire spelling the store and existing documents
// use.
package subtitle
