// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no CGO. They never open a database directly;
// stores are obtained through a driven.JobStoreOpener.
package services
