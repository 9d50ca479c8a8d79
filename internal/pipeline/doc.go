// Package pipeline runs one index-and-query pass: it loads the reference and
// query FASTA files, extracts their k-mers, builds the Bloom filter from the
// reference and counts query matches against it.
//
// The Bloom phases are strictly ordered: Build finishes before Count starts.
// Only input loading runs concurrently.
package pipeline
