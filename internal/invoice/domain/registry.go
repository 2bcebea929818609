package domain

import (
	"reflect"

	sharedEvents "github.com/davicafu/einvoicelab/internal/shared/domain/events"
)

const (
	InvoiceGenerated = "invoice.generated"
	InvoiceCancelled = "invoice.cancelled"
	InvoiceReset     = "invoice.reset"
)

const InvoiceTopic = "einvoice"

const AggregateType = "invoice"

// ResetPayload acompaña a InvoiceReset.
type ResetPayload struct {
	Generation uint64 `json:"generation"`
	Count      int    `json:"count"`
}

func (r *ResetPayload) PartitionKey() string {
	return "reset"
}

func NewEventRegistry() map[string]sharedEvents.EventMetadata {
	return map[string]sharedEvents.EventMetadata{
		InvoiceGenerated: {
			Type:  reflect.TypeOf(Invoice{}),
			Topic: InvoiceTopic,
		},
		InvoiceCancelled: {
			Type:  reflect.TypeOf(Invoice{}),
			Topic: InvoiceTopic,
		},
		InvoiceReset: {
			Type:  reflect.TypeOf(ResetPayload{}),
			Topic: InvoiceTopic,
		},
	}
}
