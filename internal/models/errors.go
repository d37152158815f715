package models

import (
	"fmt"
	"strings"
)

// ValidationError reports a rejected input. Maps to HTTP 400 at the edge.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports a missing entity. Maps to HTTP 404.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// MissingContextError means the billing context for an operation could not be
// resolved: a unit with no tenant, a property with no company, and so on.
type MissingContextError struct {
	What string
}

func (e *MissingContextError) Error() string {
	return "missing billing context: " + e.What
}

// IncompleteDataError means an entity was resolved but lacks a field the
// operation needs.
type IncompleteDataError struct {
	Entity string
	Field  string
}

func (e *IncompleteDataError) Error() string {
	return fmt.Sprintf("%s is missing required field %s", e.Entity, e.Field)
}

// PartialInvoiceError reports an invoice that was written while some of its
// charges could not be marked as consumed. The invoice exists; the named
// charges need reconciliation.
type PartialInvoiceError struct {
	InvoiceNumber string
	ChargeIDs     []string
	Err           error
}

func (e *PartialInvoiceError) Error() string {
	return fmt.Sprintf("invoice %s created but charges [%s] were not marked invoiced: %v",
		e.InvoiceNumber, strings.Join(e.ChargeIDs, ", "), e.Err)
}

func (e *PartialInvoiceError) Unwrap() error {
	return e.Err
}
