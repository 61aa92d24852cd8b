package model

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	BaseModel
	Name        string  `gorm:"type:varchar(200);uniqueIndex;not null" json:"name" validate:"required,max=200"`
	Description string  `gorm:"type:varchar(1000)" json:"description" validate:"max=1000"`
	Price       float64 `gorm:"not null;default:0;index" json:"price" validate:"gte=0,lte=999999.99"`
	Stock       int     `gorm:"not null;default:0;index" json:"stock" validate:"gte=0"`

	// Relasi
	Categories []Category `gorm:"many2many:product_categories;constraint:OnDelete:CASCADE" json:"categories"`
}

func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	return check(p)
}

// HasCategory reports whether the product already references the category.
func (p *Product) HasCategory(id uuid.UUID) bool {
	for _, c := range p.Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

// ProductSummary is the subset of product fields embedded in other responses.
type ProductSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
}

// Pagination describes one page of a product listing.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// NewPagination computes the page metadata for total items split into pages of limit.
func NewPagination(page, limit int, total int64) Pagination {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		CurrentPage: page,
		TotalPages:  pages,
		TotalItems:  total,
		HasNext:     page < pages,
		HasPrev:     page > 1,
	}
}

type ProductPage struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}
