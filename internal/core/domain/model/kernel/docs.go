// Package kernel holds the value objects shared by every aggregate of the order
// service: UUID identifiers, Money amounts and the DomainEvent contract.
package kernel
