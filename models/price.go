package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Price is a monetary value kept in its textual form.
// The data store holds prices as strings, but clients may send either a JSON
// string or a JSON number, so both are accepted and the value is always
// written back as a string.
type Price string

// NewPrice formats a float the way a number input would render it.
func NewPrice(value float64) Price {
	return Price(strconv.FormatFloat(value, 'f', -1, 64))
}

// Float parses the price. ok is false when the text is not a finite number.
func (p Price) Float() (value float64, ok bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(p)), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// String returns the raw price text
func (p Price) String() string {
	return string(p)
}

// MarshalJSON always emits the price as a JSON string
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(p))
}

// UnmarshalJSON accepts a JSON string, a JSON number or null
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Price(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = Price(n.String())
	return nil
}
