package domain

import "context"

// EntityCategory is the kind of a named entity.
type EntityCategory string

// Entity categories usable as search keywords.
const (
	EntityPerson       EntityCategory = "person"
	EntityOrganization EntityCategory = "organization"
	EntityLocation     EntityCategory = "location"
	EntityEvent        EntityCategory = "event"
	EntityCreativeWork EntityCategory = "creative_work"
)

// IsSearchable reports whether entities of this category make a good lookup key.
func (c EntityCategory) IsSearchable() bool {
	switch c {
	case EntityPerson, EntityOrganization, EntityLocation, EntityEvent, EntityCreativeWork:
		return true
	}
	return false
}

// Entity is a named entity found in text.
type Entity struct {
	Text     string         `json:"text"`
	Category EntityCategory `json:"category"`
}

// EntityRecognizer extracts named entities in order of appearance.
type EntityRecognizer interface {
	Entities(ctx context.Context, text string) ([]Entity, error)
}
