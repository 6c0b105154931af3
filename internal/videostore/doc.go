// Package videostore persists video documents and their subtitle collections.
//
// The Store interface is the save protocol's boundary: besides plain document
// CRUD it exposes two deliberately narrow partial updates, one replacing the
// whole languages tree and one replacing a single video-scoped subtitle
// array. The two subtitle generations are stored and written independently;
// nothing here migrates one into the other.
//
// Two backends implement the interface: SQLite (the default for local
// installs, nested collections serialized into JSON columns) and MongoDB for
// deployments that already have the documents there. Open selects one from
// config. The SQLite backend takes a file lock on open, matching the
// single-writer editing model; concurrent writers are a misuse, not a
// supported mode.
package videostore
