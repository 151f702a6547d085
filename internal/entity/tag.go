package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag belongs to exactly one blog. Names are free text, conventionally
// "#word".
type Tag struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	BlogID    uuid.UUID `gorm:"type:uuid;not null;index" json:"blog_id"`
	Blog      Blog      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Subscribers []User `gorm:"many2many:tag_subscribers;joinForeignKey:TagID;joinReferences:SubscriberID" json:"subscribers,omitempty"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID, err = uuid.NewV7()
	}
	return
}

type TagSubscriber struct {
	TagID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SubscriberID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (TagSubscriber) TableName() string { return "tag_subscribers" }
