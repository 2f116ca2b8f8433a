package utils

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// FormatAmount renders a money amount with two decimals, e.g. 35 -> "35.00"
func FormatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

// IDError represents a malformed record identifier in a URL
type IDError struct {
	Code    string
	Message string
}

func (e *IDError) Error() string {
	return e.Message
}

// ParseID parses a positive record identifier from a URL parameter
func ParseID(param string) (uint, error) {
	if param == "" {
		return 0, &IDError{Code: "INVALID_REQUEST", Message: "ID is required"}
	}
	id, err := strconv.ParseUint(param, 10, 64)
	if err != nil || id == 0 {
		return 0, &IDError{Code: "INVALID_ID", Message: fmt.Sprintf("Invalid ID %q", param)}
	}
	return uint(id), nil
}
