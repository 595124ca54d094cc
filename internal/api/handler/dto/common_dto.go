package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = time.DateOnly

type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type TokenRequest struct {
	Username string `json:"username"`
}

func (r *TokenRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return fmt.Errorf("username is required")
	}
	return nil
}

type TokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Money renders an amount with exactly two decimals, so zero is "0.00".
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func Date(t time.Time) string {
	return t.Format(dateLayout)
}

// OptionalDate keeps a missing date as JSON null.
func OptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := Date(*t)
	return &s
}

// ParseDate accepts YYYY-MM-DD and returns midnight UTC.
func ParseDate(raw string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", raw)
	}
	return t, nil
}

// ParseTimestamp accepts RFC 3339 or a bare YYYY-MM-DD date.
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return ParseDate(raw)
}

// Bounds on request amounts. The exponent is checked before any comparison
// because rescaling a value like 1e1000000000 allocates its full expansion.
const (
	maxMoneyExponent = 12
	maxMoneyDigits   = 24
)

var maxMoneyAmount = decimal.New(1, maxMoneyExponent)

func parseMoney(field, raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, fmt.Errorf("%s is required", field)
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s must be a decimal number", field)
	}
	if exp := d.Exponent(); exp > maxMoneyExponent || exp < -maxMoneyExponent {
		return decimal.Zero, fmt.Errorf("%s is out of range", field)
	}
	if len(strings.TrimPrefix(d.Coefficient().String(), "-")) > maxMoneyDigits {
		return decimal.Zero, fmt.Errorf("%s has too many digits (max %d)", field, maxMoneyDigits)
	}
	if d.Abs().GreaterThan(maxMoneyAmount) {
		return decimal.Zero, fmt.Errorf("%s cannot exceed %s", field, maxMoneyAmount.String())
	}
	return d, nil
}
