package model

import (
	"time"

	"github.com/google/uuid"
)

// ItemCategory tags an itinerary item.
type ItemCategory string

// Itinerary item categories.
const (
	ItemSightseeing   ItemCategory = "sightseeing"
	ItemFood          ItemCategory = "food"
	ItemTransport     ItemCategory = "transport"
	ItemAccommodation ItemCategory = "accommodation"
	ItemActivity      ItemCategory = "activity"
	ItemOther         ItemCategory = "other"
)

// ItemCategories lists every ItemCategory in display order.
var ItemCategories = []ItemCategory{
	ItemSightseeing, ItemFood, ItemTransport, ItemAccommodation, ItemActivity, ItemOther,
}

// Valid reports whether c is a known category.
func (c ItemCategory) Valid() bool {
	for _, k := range ItemCategories {
		if c == k {
			return true
		}
	}
	return false
}

// ItineraryItem is a scheduled activity. DestinationID is nil when the
// item is not tied to a destination; EndTime is nil for open-ended items.
type ItineraryItem struct {
	ID            uuid.UUID
	TripID        uuid.UUID
	DestinationID *uuid.UUID
	Title         string
	Description   string
	Location      string
	StartTime     time.Time
	EndTime       *time.Time
	Category      ItemCategory
}
