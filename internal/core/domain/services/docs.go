// Package services provides domain services for the quote lifecycle: logic
// that needs more than a single Request or that talks to a collaborator
// through a narrow contract.
//
// The package includes:
//   - SequenceGenerator: yearly document numbers such as REQ-2025-0042
//   - DeliveryCoordinator: courier authorization and delivery proof normalization
//   - DocumentComposer: the renderer-agnostic payload of a quote document
package services
