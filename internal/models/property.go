package models

import "time"

type PropertyStatus string

const (
	StatusAvailable PropertyStatus = "available"
	StatusSold      PropertyStatus = "sold"
)

// Valid reports whether s is a known listing status
func (s PropertyStatus) Valid() bool {
	return s == StatusAvailable || s == StatusSold
}

type PropertyType string

const (
	TypeApartment  PropertyType = "apartment"
	TypeHouse      PropertyType = "house"
	TypeVilla      PropertyType = "villa"
	TypePenthouse  PropertyType = "penthouse"
	TypeCommercial PropertyType = "commercial"
)

// PropertyTypes lists the accepted property types
var PropertyTypes = []PropertyType{TypeApartment, TypeHouse, TypeVilla, TypePenthouse, TypeCommercial}

// Valid reports whether t is a known property type
func (t PropertyType) Valid() bool {
	for _, known := range PropertyTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Property is a listing owned by exactly one user
type Property struct {
	ID           string         `gorm:"primaryKey;size:36" json:"id" bson:"_id"`
	UserID       string         `gorm:"size:36;not null;index" json:"userId" bson:"userId"`
	Title        string         `gorm:"not null" json:"title" bson:"title"`
	Price        float64        `gorm:"not null" json:"price" bson:"price"`
	Location     string         `gorm:"not null" json:"location" bson:"location"`
	Description  string         `gorm:"not null;default:''" json:"description" bson:"description"`
	Status       PropertyStatus `gorm:"size:16;not null;default:available;index" json:"status" bson:"status"`
	PropertyType PropertyType   `gorm:"size:16;not null;default:apartment" json:"propertyType" bson:"propertyType"`
	Image        *string        `json:"image" bson:"image"`
	Size         *float64       `json:"size" bson:"size"`
	Rooms        *int           `json:"rooms" bson:"rooms"`
	CreatedAt    time.Time      `gorm:"index" json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt" bson:"updatedAt"`
}
