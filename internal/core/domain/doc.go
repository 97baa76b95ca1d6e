// Package domain defines the core entities of the job listings pipeline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawRecord: One scraped job posting as exported by a source
//   - CanonicalRecord: A job posting after key and location normalisation
//   - JobListing: The typed row stored in the shared job_listings table
//   - SourceTag: The scraping source a file came from
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
