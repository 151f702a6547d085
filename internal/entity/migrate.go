package entity

import "gorm.io/gorm"

// AutoMigrate creates the full schema. Join entities are migrated explicitly
// so their composite primary keys exist before the aggregates reference them.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Category{},
		&Blog{},
		&BlogAuthor{},
		&BlogLiker{},
		&BlogSubscriber{},
		&BlogCategory{},
		&Tag{},
		&TagSubscriber{},
		&Post{},
		&PostAuthor{},
		&PostTag{},
		&PostLiker{},
		&PostFavorite{},
		&Comment{},
	)
}
