package apidoc

import "time"

// ApiDocument is the persisted record behind a hosted JSON endpoint. The slug
// doubles as the primary key and the public path segment. JSONData holds the
// caller-supplied JSON exactly as validated at write time and is served back
// verbatim.
type ApiDocument struct {
	Slug      string    `json:"slug" bson:"slug"`
	Name      string    `json:"name" bson:"name"`
	JSONData  string    `json:"jsonData,omitempty" bson:"jsonData"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
