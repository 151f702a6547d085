package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// MaxBlogsPerUser caps how many blogs a single user may author.
	MaxBlogsPerUser = 3
	// MaxAuthorsPerBlog caps the author set of a blog.
	MaxAuthorsPerBlog = 5
	// MaxCategoriesPerBlog caps the category membership of a blog.
	MaxCategoriesPerBlog = 3
)

type Blog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:500;not null" json:"name"`
	Archived  bool      `gorm:"not null;default:false" json:"archived"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Authors     []User     `gorm:"many2many:blog_authors;joinForeignKey:BlogID;joinReferences:AuthorID" json:"authors,omitempty"`
	Likers      []User     `gorm:"many2many:blog_likers;joinForeignKey:BlogID;joinReferences:LikerID" json:"likers,omitempty"`
	Subscribers []User     `gorm:"many2many:blog_subscribers;joinForeignKey:BlogID;joinReferences:SubscriberID" json:"subscribers,omitempty"`
	Categories  []Category `gorm:"many2many:blog_categories;joinForeignKey:BlogID;joinReferences:CategoryID" json:"categories,omitempty"`
	Tags        []Tag      `gorm:"constraint:OnDelete:CASCADE" json:"tags,omitempty"`
	Posts       []Post     `gorm:"constraint:OnDelete:CASCADE" json:"posts,omitempty"`
}

func (b *Blog) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID, err = uuid.NewV7()
	}
	return
}

// Join rows carry a composite primary key so a (blog, user) pair can exist
// at most once. A racing duplicate insert fails on the key instead of
// silently double-applying.

type BlogAuthor struct {
	BlogID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	AuthorID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (BlogAuthor) TableName() string { return "blog_authors" }

type BlogLiker struct {
	BlogID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	LikerID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (BlogLiker) TableName() string { return "blog_likers" }

type BlogSubscriber struct {
	BlogID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	SubscriberID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (BlogSubscriber) TableName() string { return "blog_subscribers" }

type BlogCategory struct {
	BlogID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (BlogCategory) TableName() string { return "blog_categories" }
