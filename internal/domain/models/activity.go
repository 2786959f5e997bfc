// internal/domain/models/activity.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Activity is a named, capacity-bounded event that participants sign up for.
// Name is the lookup key and travels as the JSON object key, not in the body.
type Activity struct {
	Name            string   `json:"-" bson:"name"`
	Category        string   `json:"category,omitempty" bson:"category,omitempty"`
	Description     string   `json:"description" bson:"description"`
	Schedule        string   `json:"schedule" bson:"schedule"`
	MaxParticipants int      `json:"max_participants" bson:"max_participants"`
	Participants    []string `json:"participants" bson:"participants"`
}

// SpotsLeft is capacity minus the current roster size. It goes negative
// when the server reports more participants than capacity.
func (a Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// Clone returns a copy that shares no slice storage with a.
func (a Activity) Clone() Activity {
	out := a
	out.Participants = append([]string(nil), a.Participants...)
	return out
}

// Collection is an ordered name -> Activity mapping. Its JSON form is an
// object keyed by activity name; key order survives both decoding and
// encoding.
type Collection struct {
	items []Activity
	index map[string]int
}

// NewCollection builds a collection from activities in the given order.
// A later activity with a duplicate name replaces the earlier one in place.
func NewCollection(acts ...Activity) Collection {
	var c Collection
	for _, a := range acts {
		c.Put(a)
	}
	return c
}

// Put inserts a or replaces the activity with the same name, keeping its slot.
func (c *Collection) Put(a Activity) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if i, ok := c.index[a.Name]; ok {
		c.items[i] = a
		return
	}
	c.index[a.Name] = len(c.items)
	c.items = append(c.items, a)
}

// Get looks up an activity by its exact name.
func (c Collection) Get(name string) (Activity, bool) {
	i, ok := c.index[name]
	if !ok {
		return Activity{}, false
	}
	return c.items[i], true
}

// Len reports the number of activities.
func (c Collection) Len() int { return len(c.items) }

// All returns the activities in collection order.
func (c Collection) All() []Activity {
	return append([]Activity(nil), c.items...)
}

// Names returns the activity names in collection order.
func (c Collection) Names() []string {
	names := make([]string, len(c.items))
	for i, a := range c.items {
		names[i] = a.Name
	}
	return names
}

// MarshalJSON writes the collection as a JSON object in collection order.
func (c Collection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range c.items {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(a.Name)
		if err != nil {
			return nil, err
		}
		if a.Participants == nil {
			a.Participants = []string{}
		}
		body, err := json.Marshal(a)
		if err != nil {
			return nil, fmt.Errorf("activity %q: %w", a.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object of activities, keeping key order.
func (c *Collection) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("activities: expected JSON object, got %v", tok)
	}

	out := Collection{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("activities: expected string key, got %v", tok)
		}
		var a Activity
		if err := dec.Decode(&a); err != nil {
			return fmt.Errorf("activity %q: %w", name, err)
		}
		a.Name = name
		out.Put(a)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*c = out
	return nil
}
