// models/property.go
package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PropertyStatus string

const (
	PropertyAvailable PropertyStatus = "available"
	PropertyRequested PropertyStatus = "requested"
	PropertyRented    PropertyStatus = "rented"
	PropertyRemoved   PropertyStatus = "removed"
)

type ListingType string

const (
	ListingRent ListingType = "rent"
	ListingBuy  ListingType = "buy"
)

type PropertyType string

const (
	PropertyApartment PropertyType = "apartment"
	PropertyHouse     PropertyType = "house"
	PropertyStudio    PropertyType = "studio"
	PropertyRoom      PropertyType = "room"
)

type Property struct {
	gorm.Model
	SellerID          uint            `json:"sellerId"`
	Seller            Profile         `json:"seller"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Price             float64         `json:"price"`
	Currency          string          `json:"currency" gorm:"default:'USD'"`
	ListingType       ListingType     `json:"listingType" gorm:"default:'rent'"`
	Location          string          `json:"location"`
	Latitude          *float64        `json:"latitude"`
	Longitude         *float64        `json:"longitude"`
	Rooms             int             `json:"rooms"`
	Bathrooms         int             `json:"bathrooms"`
	SquareMeters      *float64        `json:"squareMeters"`
	Floor             *int            `json:"floor"`
	TotalFloors       *int            `json:"totalFloors"`
	Amenities         datatypes.JSON  `json:"amenities"`
	PropertyType      PropertyType    `json:"propertyType" gorm:"default:'apartment'"`
	AvailableFrom     *time.Time      `json:"availableFrom"`
	MinimumStayMonths int             `json:"minimumStayMonths"`
	Status            PropertyStatus  `json:"status" gorm:"default:'available';index"`
	ViewCount         int             `json:"viewCount"`
	LikeCount         int             `json:"likeCount"`
	Images            []PropertyImage `json:"images,omitempty"`
}

type PropertyImage struct {
	gorm.Model
	PropertyID  uint   `json:"propertyId" gorm:"index"`
	ImageURL    string `json:"imageUrl"`
	StoragePath string `json:"storagePath"`
	IsPrimary   bool   `json:"isPrimary"`
	OrderIndex  int    `json:"orderIndex"`
}

// PropertyView is an append-only record of a listing being opened. The
// viewer is nullable so anonymous browsing still counts.
type PropertyView struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	PropertyID uint      `json:"propertyId" gorm:"index"`
	ViewerID   *uint     `json:"viewerId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (s PropertyStatus) Valid() bool {
	switch s {
	case PropertyAvailable, PropertyRequested, PropertyRented, PropertyRemoved:
		return true
	}
	return false
}

var propertyTransitions = map[PropertyStatus][]PropertyStatus{
	PropertyAvailable: {PropertyRequested, PropertyRemoved},
	PropertyRequested: {PropertyRented, PropertyAvailable, PropertyRemoved},
	PropertyRented:    {},
	PropertyRemoved:   {PropertyAvailable},
}

// CanTransition reports whether the status may move to the target state.
// Rented is terminal for the active cycle.
func (s PropertyStatus) CanTransition(to PropertyStatus) bool {
	for _, next := range propertyTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}
