package models

import (
	"encoding/json"
	"time"
)

// Product is a catalog item. Prices are integer amounts in the
// store's smallest currency unit.
//
// The feature list is stored as a JSON-encoded text blob
// (FeaturesRaw); handlers expose it as a plain list via
// DecodeFeatures/EncodeFeatures. A malformed blob decodes to an
// empty list rather than an error.
type Product struct {
	ProductID      string            `json:"id" bson:"productid"`
	Name           string            `json:"name" bson:"name"`
	Description    string            `json:"description" bson:"description"`
	Price          int64             `json:"price" bson:"price"`
	Image          string            `json:"image" bson:"image"`
	CategoryID     string            `json:"categoryId" bson:"categoryid"`
	Rating         float64           `json:"rating" bson:"rating"`
	ReviewCount    int               `json:"reviewCount" bson:"reviewcount"`
	InStock        bool              `json:"inStock" bson:"instock"`
	IsNew          bool              `json:"isNew" bson:"isnew"`
	Discount       int               `json:"discount" bson:"discount"`
	Features       []string          `json:"features" bson:"-"`
	FeaturesRaw    string            `json:"-" bson:"features"`
	Specifications map[string]string `json:"specifications,omitempty" bson:"specifications,omitempty"`
	CreatedAt      time.Time         `json:"createdAt" bson:"createdAt"`
}

// DecodeFeatures fills Features from the stored blob.
func (p *Product) DecodeFeatures() {
	p.Features = DecodeFeatureList(p.FeaturesRaw)
}

// EncodeFeatures fills FeaturesRaw from Features before a write.
func (p *Product) EncodeFeatures() {
	p.FeaturesRaw = EncodeFeatureList(p.Features)
}

func DecodeFeatureList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var features []string
	if err := json.Unmarshal([]byte(raw), &features); err != nil {
		return []string{}
	}
	if features == nil {
		return []string{}
	}
	return features
}

func EncodeFeatureList(features []string) string {
	if features == nil {
		features = []string{}
	}
	data, err := json.Marshal(features)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// Category owns products; it cannot be deleted while products still
// reference it.
type Category struct {
	CategoryID  string `json:"id" bson:"categoryid"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description" bson:"description"`
	Image       string `json:"image" bson:"image"`
}
