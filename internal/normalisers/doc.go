// Package normalisers provides implementations of the RecordNormaliser
// interface and the helpers they share.
//
//   - jobposting: key renaming and defaults for scraped job postings
//   - location: rule-based rewriting of free-text locations
package normalisers
