// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - RecordNormaliser: Rewrites a raw job posting into the canonical schema
//   - JobStore: Relational persistence for canonical listings
//   - JobStoreOpener: Opens a JobStore for a path or DSN
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
