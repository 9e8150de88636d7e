package models

import "time"

// Content page kinds.
const (
	ContentAbout    = "about"
	ContentFAQ      = "faq"
	ContentTerms    = "terms"
	ContentPrivacy  = "privacy"
	ContentShipping = "shipping"
	ContentReturns  = "returns"
)

func ValidContentType(t string) bool {
	switch t {
	case ContentAbout, ContentFAQ, ContentTerms, ContentPrivacy, ContentShipping, ContentReturns:
		return true
	}
	return false
}

type Content struct {
	ContentID string    `json:"id" bson:"contentid"`
	Type      string    `json:"type" bson:"type"`
	Title     string    `json:"title" bson:"title"`
	Body      string    `json:"content" bson:"body"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
