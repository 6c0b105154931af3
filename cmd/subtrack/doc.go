// Command subtrack manages video documents, their per-language segment trees,
// and their subtitle tracks from the terminal.
package main
