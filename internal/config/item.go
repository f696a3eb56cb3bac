package config

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// subMenuItem has SubMenuItem's fields without its methods.
type subMenuItem SubMenuItem

// UnmarshalJSON accepts "Title" or {"title": ..., "link": ...}.
func (s *SubMenuItem) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		*s = SubMenuItem{}
		return json.Unmarshal(data, &s.Title)
	}
	var v subMenuItem
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = SubMenuItem(v)
	return nil
}

// MarshalJSON writes link-less items as bare titles.
func (s SubMenuItem) MarshalJSON() ([]byte, error) {
	if s.Link == "" {
		return json.Marshal(s.Title)
	}
	return json.Marshal(subMenuItem(s))
}

// UnmarshalYAML accepts a scalar title or a mapping with title and link.
func (s *SubMenuItem) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*s = SubMenuItem{Title: value.Value}
		return nil
	}
	var v subMenuItem
	if err := value.Decode(&v); err != nil {
		return err
	}
	*s = SubMenuItem(v)
	return nil
}

// MarshalYAML writes link-less items as bare titles.
func (s SubMenuItem) MarshalYAML() (any, error) {
	if s.Link == "" {
		return s.Title, nil
	}
	return subMenuItem(s), nil
}
