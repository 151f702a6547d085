package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringList stores a bounded list of strings as a JSON column. Used for
// post notes and bibliography entries.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
}

// Post titles are unique within their blog, enforced by the composite index
// so a concurrent duplicate surfaces as a constraint violation.
type Post struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string     `gorm:"size:300;not null;uniqueIndex:idx_posts_blog_title" json:"title"`
	Body         string     `gorm:"type:text;not null" json:"body"`
	Published    bool       `gorm:"not null;default:false" json:"published"`
	Notes        StringList `gorm:"type:text" json:"notes,omitempty"`
	Bibliography StringList `gorm:"type:text" json:"bibliography,omitempty"`
	BlogID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_posts_blog_title" json:"blog_id"`
	Blog         Blog       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Authors    []User `gorm:"many2many:post_authors;joinForeignKey:PostID;joinReferences:AuthorID" json:"authors,omitempty"`
	Tags       []Tag  `gorm:"many2many:post_tags;joinForeignKey:PostID;joinReferences:TagID" json:"tags,omitempty"`
	Likers     []User `gorm:"many2many:post_likers;joinForeignKey:PostID;joinReferences:LikerID" json:"likers,omitempty"`
	Favoriters []User `gorm:"many2many:post_favorites;joinForeignKey:PostID;joinReferences:UserID" json:"favoriters,omitempty"`

	Comments []Comment `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	return
}

type PostAuthor struct {
	PostID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	AuthorID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (PostAuthor) TableName() string { return "post_authors" }

type PostTag struct {
	PostID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	TagID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (PostTag) TableName() string { return "post_tags" }

type PostLiker struct {
	PostID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	LikerID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (PostLiker) TableName() string { return "post_likers" }

type PostFavorite struct {
	PostID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (PostFavorite) TableName() string { return "post_favorites" }

// Comment is modeled and migrated but has no exposed routes yet.
type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;index" json:"post_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}
