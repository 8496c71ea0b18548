// Package core defines the shared language of the f1stats system.
//
// This package contains:
//   - Domain records read from f1db (RaceResult)
//   - Enumerations (FinishStatus)
//   - The default-on-absence helpers used wherever a nullable column is read
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
