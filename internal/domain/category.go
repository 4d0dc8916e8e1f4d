package domain

import (
	"encoding/json"
	"errors"
)

type Category struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// UnmarshalJSON accepts both the object form and the older bare string form
// of the categories listing.
func (c *Category) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		if name == "" {
			return errors.New("empty category")
		}
		*c = Category{Slug: name, Name: name}
		return nil
	}

	type plain Category
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.Slug == "" {
		return errors.New("category without slug")
	}
	if p.Name == "" {
		p.Name = p.Slug
	}
	*c = Category(p)
	return nil
}
