package model

import (
	"time"

	"github.com/google/uuid"
)

// DocumentType tags a travel document.
type DocumentType string

// Document types.
const (
	DocPassport    DocumentType = "passport"
	DocVisa        DocumentType = "visa"
	DocTicket      DocumentType = "ticket"
	DocReservation DocumentType = "reservation"
	DocInsurance   DocumentType = "insurance"
	DocOther       DocumentType = "other"
)

// DocumentTypes lists every DocumentType in display order.
var DocumentTypes = []DocumentType{
	DocPassport, DocVisa, DocTicket, DocReservation, DocInsurance, DocOther,
}

// Valid reports whether d is a known type.
func (d DocumentType) Valid() bool {
	for _, k := range DocumentTypes {
		if d == k {
			return true
		}
	}
	return false
}

// Document is an attached file. Data is nil when the document was loaded
// without its payload (listings).
type Document struct {
	ID          uuid.UUID
	TripID      uuid.UUID
	Title       string
	Type        DocumentType
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
	AddedAt     time.Time
}
