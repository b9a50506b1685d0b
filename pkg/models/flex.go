package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Flex holds a JSON scalar that ZoneMinder encodes as a string, a number or a
// boolean depending on release and database driver. It always keeps the
// textual form.
type Flex string

func (f *Flex) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = Flex(s)
		return nil
	}
	*f = Flex(b)
	return nil
}

func (f Flex) String() string { return string(f) }

// Int parses the value as a base-10 integer.
func (f Flex) Int() (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(string(f)), 10, 64)
}

// Float parses the value as a float.
func (f Flex) Float() (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(string(f)), 64)
}

// Bool reports whether the value is "1" or "true".
func (f Flex) Bool() bool {
	s := strings.ToLower(strings.TrimSpace(string(f)))
	return s == "1" || s == "true"
}
