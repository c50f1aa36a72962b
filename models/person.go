// path: models/person.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DefaultPhotoURL is the placeholder shown until photo uploads exist.
const DefaultPhotoURL = "/static/images/default-avatar.png"

// DateLayout is the date-only format used by every date field.
const DateLayout = "2006-01-02"

type MissingPerson struct {
	ID           int    `bson:"id" json:"id" yaml:"id"`
	Name         string `bson:"name" json:"name" yaml:"name"`
	Age          *int   `bson:"age,omitempty" json:"age,omitempty" yaml:"age,omitempty"`
	Gender       string `bson:"gender,omitempty" json:"gender,omitempty" yaml:"gender,omitempty"`
	LastSeen     string `bson:"last_seen,omitempty" json:"last_seen,omitempty" yaml:"last_seen,omitempty"`
	LastSeenDate string `bson:"last_seen_date,omitempty" json:"last_seen_date,omitempty" yaml:"last_seen_date,omitempty"`
	Region       string `bson:"region,omitempty" json:"region,omitempty" yaml:"region,omitempty"`
	Description  string `bson:"description,omitempty" json:"description,omitempty" yaml:"description,omitempty"`

	// Contact of the person filing the report
	ContactName  string `bson:"contact_name,omitempty" json:"contact_name,omitempty" yaml:"contact_name,omitempty"`
	ContactPhone string `bson:"contact_phone,omitempty" json:"contact_phone,omitempty" yaml:"contact_phone,omitempty"`
	ContactEmail string `bson:"contact_email,omitempty" json:"contact_email,omitempty" yaml:"contact_email,omitempty"`

	PhotoURL     string `bson:"photo_url" json:"photo_url" yaml:"photo_url"`
	DateReported string `bson:"date_reported" json:"date_reported" yaml:"date_reported"`
}

type FoundPerson struct {
	ID           int    `bson:"id" json:"id" yaml:"id"`
	Name         string `bson:"name" json:"name" yaml:"name"`
	Age          *int   `bson:"age,omitempty" json:"age,omitempty" yaml:"age,omitempty"`
	FoundDate    string `bson:"found_date,omitempty" json:"found_date,omitempty" yaml:"found_date,omitempty"`
	ReunitedWith string `bson:"reunited_with,omitempty" json:"reunited_with,omitempty" yaml:"reunited_with,omitempty"`
	PhotoURL     string `bson:"photo_url" json:"photo_url" yaml:"photo_url"`
}

// IntPtr is a small helper for optional ages in literals and tests.
func IntPtr(v int) *int { return &v }

// UnmarshalJSON accepts ages stored either as numbers or as numeric strings;
// older documents kept the raw form value.
func (p *MissingPerson) UnmarshalJSON(data []byte) error {
	type plain MissingPerson
	aux := struct {
		*plain
		Age json.RawMessage `json:"age,omitempty"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	age, err := decodeAge(aux.Age)
	if err != nil {
		return err
	}
	p.Age = age
	return nil
}

func (p *FoundPerson) UnmarshalJSON(data []byte) error {
	type plain FoundPerson
	aux := struct {
		*plain
		Age json.RawMessage `json:"age,omitempty"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	age, err := decodeAge(aux.Age)
	if err != nil {
		return err
	}
	p.Age = age
	return nil
}

func decodeAge(raw json.RawMessage) (*int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid age %q", s)
		}
		return &v, nil
	}
	var v int
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("invalid age %s", raw)
	}
	return &v, nil
}
