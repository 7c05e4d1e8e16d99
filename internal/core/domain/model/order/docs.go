// Package order holds the retail order aggregate and its lifecycle.
//
// The package includes:
//   - Order: the aggregate root with items, totals, distributor assignment,
//     escalation level and optimistic-lock version
//   - Status: the lifecycle state machine
//     (pending -> acknowledged -> payment_confirmed -> processing -> dispatched -> delivered,
//     cancelled from any state except delivered)
//   - LineItem, Customer, DeliveryOption: intake value objects
//   - NumberGenerator: unique human-facing order numbers
package order
