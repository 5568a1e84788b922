package listing

import "unidomus/internal/domain"

type CreateRequest struct {
	Address      domain.Address `json:"address" binding:"required"`
	Photos       []string       `json:"photos" binding:"required"`
	TenantIDs    []int64        `json:"tenantsID"`
	Typology     string         `json:"typology" binding:"required"`
	Description  string         `json:"description"`
	Price        int            `json:"price" binding:"required"`
	FloorArea    int            `json:"floorArea" binding:"required"`
	Availability string         `json:"availability"`
}

// UpdateRequest is a partial edit; nil fields stay untouched.
type UpdateRequest struct {
	Address      *domain.Address `json:"address"`
	Photos       *[]string       `json:"photos"`
	TenantIDs    *[]int64        `json:"tenantsID"`
	Typology     *string         `json:"typology"`
	Description  *string         `json:"description"`
	Price        *int            `json:"price"`
	FloorArea    *int            `json:"floorArea"`
	Availability *string         `json:"availability"`
}

type BanRequest struct {
	Permanent       bool   `json:"banPermanently"`
	DurationSeconds int64  `json:"durationSeconds"`
	Message         string `json:"banMsg"`
}

type ListQuery struct {
	City     string `form:"city"`
	Typology string `form:"typology"`
	PriceMin int    `form:"priceMin"`
	PriceMax int    `form:"priceMax"`
	AreaMin  int    `form:"areaMin"`
	AreaMax  int    `form:"areaMax"`
}
