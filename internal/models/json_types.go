package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap is a map column stored as JSON text. A nil map is stored as SQL
// NULL, never as the string "null", so the presence of a draft overlay can be
// told apart from an empty one. Explicit null values inside the map survive
// the round-trip.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	b, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if len(b) == 0 || string(b) == "null" {
		*m = nil
		return nil
	}
	return json.Unmarshal(b, m)
}

// StringSlice is a []string stored as JSON text.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	b, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if len(b) == 0 || string(b) == "null" {
		*s = nil
		return nil
	}
	return json.Unmarshal(b, s)
}

// Image is an embedded image reference with optional display metadata.
type Image struct {
	URL      string `json:"url"`
	Alt      string `json:"alt,omitempty"`
	Caption  string `json:"caption,omitempty"`
	Credit   string `json:"credit,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Blurhash string `json:"blurhash,omitempty"`
}

// ImageRef is a single nullable image column stored as JSON text.
type ImageRef Image

func (i *ImageRef) Value() (driver.Value, error) {
	if i == nil {
		return nil, nil
	}
	b, err := json.Marshal(i)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (i *ImageRef) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	return json.Unmarshal(b, i)
}

// ImageList is a gallery column stored as JSON text.
type ImageList []Image

func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *ImageList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	b, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if len(b) == 0 || string(b) == "null" {
		*l = nil
		return nil
	}
	return json.Unmarshal(b, l)
}

func jsonBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported JSON column type %T", value)
	}
}
