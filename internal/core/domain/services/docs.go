// Package services provides domain services that make decisions spanning
// more than one aggregate of the order desk.
//
// The package includes:
//   - DistributorResolver: picks the partner responsible for a new order
//   - EscalationPolicy: decides when an unacknowledged order moves up a level
//
// Services here are pure: callers load the aggregates, the services decide,
// and callers persist the outcome.
package services
