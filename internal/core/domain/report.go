package domain

import "fmt"

// LineError describes a line of a source file that could not be ingested.
type LineError struct {
	File string
	Line int
	Err  error
}

// Error implements error.
func (e LineError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

// Unwrap returns the underlying parse error.
func (e LineError) Unwrap() error {
	return e.Err
}

// IngestReport summarises the normalisation of one source file.
type IngestReport struct {
	// Source is the file that was read.
	Source string

	// Output is the normalised file that was written.
	Output string

	// LinesRead counts non-blank lines read from Source.
	LinesRead int

	// RecordsWritten counts normalised records written to Output.
	RecordsWritten int

	// Errors holds one entry per skipped line.
	Errors []LineError
}

// FileKeys is the key set observed in one normalised file.
type FileKeys struct {
	Path string

	// Keys are all distinct top-level keys, sorted.
	Keys []string

	// Unique are the keys not shared by every audited file, sorted.
	Unique []string
}

// KeyAudit compares the key sets of several normalised files.
type KeyAudit struct {
	// Shared are the keys present in every file, sorted.
	Shared []string

	Files []FileKeys
}

// LoadStats counts the outcome of a populate call.
type LoadStats struct {
	RecordsRead      int
	ListingsInserted int
	ListingsIgnored  int
	UniqueInserted   int
	UniqueIgnored    int
}

// Add accumulates other into s.
func (s *LoadStats) Add(other LoadStats) {
	s.RecordsRead += other.RecordsRead
	s.ListingsInserted += other.ListingsInserted
	s.ListingsIgnored += other.ListingsIgnored
	s.UniqueInserted += other.UniqueInserted
	s.UniqueIgnored += other.UniqueIgnored
}
