package domain

import "time"

const (
	MinListingPhotos  = 1
	MaxListingPhotos  = 10
	MaxListingTenants = 12
)

// Address is the structured location of a listing. CAP is the 5-digit Italian
// postal code; Province is the 2-letter code.
type Address struct {
	Street   string `gorm:"column:street" json:"street"`
	City     string `gorm:"column:city" json:"city"`
	CAP      string `gorm:"column:cap" json:"cap"`
	HouseNum string `gorm:"column:house_num" json:"houseNum"`
	Province string `gorm:"column:province" json:"province"`
	Country  string `gorm:"column:country" json:"country"`
}

// Listing is a housing offer. The publisher and publication date are immutable
// after creation; the ban sub-record is managed by moderation only.
type Listing struct {
	ID              int64     `gorm:"column:id;primaryKey" json:"id"`
	Address         Address   `gorm:"embedded" json:"address"`
	Photos          []string  `gorm:"column:photos;serializer:json" json:"photos"`
	PublisherID     int64     `gorm:"column:publisher_id;index" json:"publisherID"`
	TenantIDs       []int64   `gorm:"column:tenant_ids;serializer:json" json:"tenantsID"`
	Typology        string    `gorm:"column:typology" json:"typology"`
	Description     string    `gorm:"column:description" json:"description,omitempty"`
	Price           int       `gorm:"column:price" json:"price"`
	FloorArea       int       `gorm:"column:floor_area" json:"floorArea"`
	Availability    string    `gorm:"column:availability" json:"availability,omitempty"`
	PublicationDate time.Time `gorm:"column:publication_date" json:"publicationDate"`
	Latitude        *float64  `gorm:"column:latitude" json:"latitude,omitempty"`
	Longitude       *float64  `gorm:"column:longitude" json:"longitude,omitempty"`
	Ban             Ban       `gorm:"embedded" json:"ban"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Listing) TableName() string { return "listings" }

// Coordinates is the projection served by the map endpoints.
type Coordinates struct {
	ListingID int64    `json:"listingID"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}
