package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// SkillCategory is one "category name -> skill" pair of the skills object.
type SkillCategory struct {
	Name  string
	Skill Skill
}

// Skills is the skills object decoded in document key order. A Go map would
// lose the order the author wrote the categories in, and the layout renders
// them exactly as written.
type Skills []SkillCategory

// UnmarshalJSON walks the object with gjson, which iterates keys in source
// order. A repeated key keeps its first position and its last value.
func (s *Skills) UnmarshalJSON(data []byte) error {
	res := gjson.ParseBytes(data)
	if res.Type == gjson.Null {
		*s = nil
		return nil
	}
	if !res.IsObject() {
		return fmt.Errorf("skills: expected object, got %s", res.Type)
	}

	out := Skills{}
	index := map[string]int{}
	var decodeErr error
	res.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		var sk Skill
		if err := json.Unmarshal([]byte(value.Raw), &sk); err != nil {
			decodeErr = fmt.Errorf("skills.%s: %w", name, err)
			return false
		}
		if i, ok := index[name]; ok {
			out[i].Skill = sk
			return true
		}
		index[name] = len(out)
		out = append(out, SkillCategory{Name: name, Skill: sk})
		return true
	})
	if decodeErr != nil {
		return decodeErr
	}
	*s = out
	return nil
}

// MarshalJSON writes the categories back as an object, preserving order.
func (s Skills) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(c.Skill)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
