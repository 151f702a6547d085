package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups blogs. Approved is true from the start only when an admin
// created it; otherwise an admin has to flip it later.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:200;uniqueIndex;not null" json:"name"`
	Approved  bool      `gorm:"not null;default:false" json:"approved"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Blogs []Blog `gorm:"many2many:blog_categories;joinForeignKey:CategoryID;joinReferences:BlogID" json:"blogs,omitempty"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}
