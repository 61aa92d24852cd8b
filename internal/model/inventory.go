package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Inventory holds the stock counters of exactly one product.
type Inventory struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"product_id" validate:"uuid_required"`
	Product   *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty" validate:"-"`
	Available int       `gorm:"not null;default:0" json:"available" validate:"gte=0"`
	Sold      int       `gorm:"not null;default:0" json:"sold" validate:"gte=0"`
}

// TableName keeps the singular table name used by the API.
func (Inventory) TableName() string {
	return "inventory"
}

func (i *Inventory) BeforeSave(tx *gorm.DB) error {
	return check(i)
}
