package models

import "time"

// Product represents a catalog entry. Rating and ReviewsCount are derived
// from the reviews collection and rewritten after every review insert.
type Product struct {
	ID            string    `bson:"id" json:"id"`
	Name          string    `bson:"name" json:"name"`
	Description   string    `bson:"description" json:"description"`
	Category      string    `bson:"category" json:"category"`
	Brand         string    `bson:"brand" json:"brand"`
	Price         float64   `bson:"price" json:"price"`
	DiscountPrice *float64  `bson:"discount_price,omitempty" json:"discount_price,omitempty"`
	Image         string    `bson:"image" json:"image"`
	Stock         int       `bson:"stock" json:"stock"`
	Rating        float64   `bson:"rating" json:"rating"`
	ReviewsCount  int       `bson:"reviews_count" json:"reviews_count"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}

// ProductFilter narrows a catalog listing. Zero values mean "no filter";
// nil price bounds leave the range open on that side.
type ProductFilter struct {
	Category string
	Brand    string
	Search   string
	MinPrice *float64
	MaxPrice *float64
	Limit    int
}

// Category groups products, e.g. engine or body parts.
type Category struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
	Icon string `bson:"icon" json:"icon"`
	Type string `bson:"type" json:"type"`
}

// Brand is a manufacturer entry in the catalog.
type Brand struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
	Logo string `bson:"logo" json:"logo"`
	Type string `bson:"type" json:"type"`
}
