package database

import (
	"gorm.io/gorm"
)

type Database struct {
	postRepo *PostRepo
	tagRepo  *TagRepo

	db *gorm.DB
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		postRepo: NewPostRepo(db),
		tagRepo:  NewTagRepo(db),
		db:       db,
	}
}

// Accessor methods for each repository

func (d Database) PostRepo() *PostRepo {
	return d.postRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

// Ping runs a minimal query to verify store connectivity.
func (d Database) Ping() error {
	var result int
	return d.db.Raw("SELECT 1").Scan(&result).Error
}
