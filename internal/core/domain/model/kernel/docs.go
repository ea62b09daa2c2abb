// Package kernel provides the shared value objects of the quote domain.
//
// The package includes:
//   - UUID: identifiers for quote requests, products, clients, staff and couriers
//   - Money: non-negative amounts rounded to cents, backed by shopspring/decimal
//   - GeoPoint: a latitude/longitude pair captured as delivery evidence
//
// Values are immutable and validated on construction; zero values report
// themselves through Validate so that half-built objects never reach persistence.
package kernel
