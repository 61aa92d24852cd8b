package model

import (
	"strings"

	"gorm.io/gorm"
)

type Category struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required,max=100"`
	Description string `gorm:"type:varchar(500);not null" json:"description" validate:"required,max=500"`
}

// BeforeSave trims and validates on both create and update.
func (c *Category) BeforeSave(tx *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)
	return check(c)
}

// CategoryDetail is a category together with the products that reference it.
type CategoryDetail struct {
	Category
	Products []ProductSummary `json:"products"`
}
