// Package persist flushes an edited video aggregate back to the store.
//
// A save issues up to three independent writes, always in the same order:
// the languages tree first, then the original subtitle array, then the new
// subtitle array. Writes for collections the session never touched are
// skipped. The first failure stops the sequence; earlier writes are not
// rolled back, and the report records each call's outcome separately so
// callers can tell exactly which collections landed.
package persist
