// Package partner models distributors and wholesalers who apply to resell
// the catalog. Approved distributors receive orders for the regions they serve.
package partner
