package models

import "time"

// Order is a placed order. The owning user is derived server-side from the
// credential at creation time; clients cannot supply it. Items are held by
// reference and may repeat — repetition implies quantity.
type Order struct {
	ID            string    `bson:"_id,omitempty" json:"_id"`
	UserID        string    `bson:"userId" json:"userId"`
	ItemIDs       []string  `bson:"itemIds" json:"itemIds"`
	Total         string    `bson:"total" json:"total"` // decimal as text
	StatusMessage string    `bson:"statusMessage" json:"statusMessage"`
	Comment       string    `bson:"comment" json:"comment"`
	Fulfilled     bool      `bson:"fulfilled" json:"fulfilled"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AuthPayload pairs a freshly issued token with the authenticated user.
// It is transient and never persisted.
type AuthPayload struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
