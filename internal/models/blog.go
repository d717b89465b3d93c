package models

import "time"

// BlogPost is admin-authored editorial content, independent of the commerce
// entities.
type BlogPost struct {
	ID        string    `bson:"id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Content   string    `bson:"content" json:"content"`
	Excerpt   string    `bson:"excerpt" json:"excerpt"`
	Image     string    `bson:"image" json:"image"`
	Author    string    `bson:"author" json:"author"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
