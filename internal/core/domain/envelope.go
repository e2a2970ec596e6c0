package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Envelope is the backend response wrapper: { "data": T, ... }.
type Envelope[T any] struct {
	Data T `json:"data"`
}

// List returns the payload of a list envelope. A missing or null data
// field yields an empty, non-nil slice.
func List[T any](e Envelope[[]T]) []T {
	if e.Data == nil {
		return []T{}
	}
	return e.Data
}

// ID is a record identifier. The backend emits both numeric and string ids,
// so ID accepts either and keeps the textual form.
type ID string

// UnmarshalJSON accepts a JSON string, number or null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// String returns the textual id.
func (id ID) String() string {
	return string(id)
}

// Amount is a numeric field that may arrive as a number or a numeric string
// (prices, durations). Unparseable strings decode as zero.
type Amount float64

// UnmarshalJSON accepts a JSON number, numeric string or null.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*a = 0
			return nil
		}
		*a = Amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

// Int returns the amount truncated to an int.
func (a Amount) Int() int {
	return int(a)
}
