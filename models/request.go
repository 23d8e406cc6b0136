// models/request.go
package models

import (
	"time"

	"gorm.io/gorm"
)

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestAccepted  RequestStatus = "accepted"
	RequestDeclined  RequestStatus = "declined"
	RequestCancelled RequestStatus = "cancelled"
)

// Request is a buyer's expression of interest in a property. It is created
// pending and reaches exactly one terminal state; the property's status is
// coupled to that transition.
//
// The partial unique index on BuyerID is the authoritative guard for the
// one-pending-request-per-buyer rule: the count in SubmitRequest only gives
// a friendly early rejection, the index is what holds under concurrent
// submissions on read-committed Postgres.
type Request struct {
	gorm.Model
	BuyerID           uint          `json:"buyerId" gorm:"index;uniqueIndex:uniq_request_buyer_pending,where:status = 'pending'"`
	Buyer             Profile       `json:"buyer"`
	PropertyID        uint          `json:"propertyId" gorm:"index"`
	Property          Property      `json:"property"`
	SellerID          uint          `json:"sellerId" gorm:"index"`
	Seller            Profile       `json:"seller"`
	Status            RequestStatus `json:"status" gorm:"default:'pending';index"`
	Message           string        `json:"message"`
	BuyerPhone        string        `json:"buyerPhone"`
	BuyerEmail        string        `json:"buyerEmail"`
	PreferredMoveDate *time.Time    `json:"preferredMoveDate"`
	ResolvedAt        *time.Time    `json:"resolvedAt"`
}

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestAccepted, RequestDeclined, RequestCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status is irreversible.
func (s RequestStatus) Terminal() bool {
	return s == RequestAccepted || s == RequestDeclined || s == RequestCancelled
}
