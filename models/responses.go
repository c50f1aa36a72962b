// path: models/responses.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MissingPersonForm is the submission body for POST /report-missing.
// Form posts and JSON posts share the same field names. Age stays a string
// here so the form value can be checked before it becomes a number.
type MissingPersonForm struct {
	Name         string `json:"name" form:"name" validate:"required"`
	Age          string `json:"age" form:"age" validate:"omitempty,age"`
	Gender       string `json:"gender" form:"gender"`
	LastSeen     string `json:"last_seen" form:"last_seen"`
	LastSeenDate string `json:"last_seen_date" form:"last_seen_date" validate:"omitempty,datetime=2006-01-02"`
	Region       string `json:"region" form:"region"`
	Description  string `json:"description" form:"description"`
	ContactName  string `json:"contact_name" form:"contact_name"`
	ContactPhone string `json:"contact_phone" form:"contact_phone"`
	ContactEmail string `json:"contact_email" form:"contact_email" validate:"omitempty,email"`
}

// UnmarshalJSON lets JSON clients send age as a number, the way records are
// returned, or as the string a form would post.
func (f *MissingPersonForm) UnmarshalJSON(data []byte) error {
	type plain MissingPersonForm
	aux := struct {
		*plain
		Age json.RawMessage `json:"age"`
	}{plain: (*plain)(f)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	age, err := ageText(aux.Age)
	if err != nil {
		return err
	}
	f.Age = age
	return nil
}

func ageText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("invalid age %s", raw)
	}
	return n.String(), nil
}

// SightingReport is the JSON body for POST /report-sighting.
type SightingReport struct {
	PersonID        string `json:"personId"`
	Location        string `json:"location"`
	Date            string `json:"date"`
	Details         string `json:"details"`
	ReporterName    string `json:"reporterName"`
	ReporterContact string `json:"reporterContact"`
}

// Result is the envelope returned by every submission endpoint.
type Result struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Reference string `json:"reference,omitempty"`
}
