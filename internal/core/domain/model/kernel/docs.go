// Package kernel provides the primitives shared by every aggregate of the
// order desk: identifiers (UUID), actor roles, delivery regions, money
// amounts and the clock.
//
// Values in this package are immutable and safe for concurrent use.
package kernel
