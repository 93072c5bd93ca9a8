package lottery

import (
	"errors"
	"fmt"
	"math"

	"github.com/goccy/go-json"

	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
)

var (
	// ErrInvalidRecord is returned when a value does not have the shape of a draw record.
	ErrInvalidRecord = errors.New("invalid draw record")
	// ErrInvalidNumber is returned when a drawn number is not an integer in 1..39.
	ErrInvalidNumber = errors.New("invalid draw number")
)

// IsValidNumber reports whether n is an integer between 1 and 39 inclusive.
// NaN, infinities and fractional values are not valid.
func IsValidNumber(n float64) bool {
	if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
		return false
	}
	return n >= MinNumber && n <= MaxNumber
}

// IsValidInt is IsValidNumber for values that are already integers.
func IsValidInt(n int) bool {
	return n >= MinNumber && n <= MaxNumber
}

// ParseRecord decodes a single JSON draw record and validates it. Distinct
// numbers are not required.
func ParseRecord(raw []byte) (models.DrawRecord, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return models.DrawRecord{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return toRecord(v)
}

// ValidateRecord checks that v has the shape of a draw record: a non-nil
// object with a string date, exactly five valid numbers and a string
// timestamp. It accepts decoded JSON objects as well as models.DrawRecord.
func ValidateRecord(v any) error {
	_, err := toRecord(v)
	return err
}

// IsValidRecord is the boolean form of ValidateRecord.
func IsValidRecord(v any) bool {
	return ValidateRecord(v) == nil
}

func toRecord(v any) (models.DrawRecord, error) {
	switch r := v.(type) {
	case nil:
		return models.DrawRecord{}, fmt.Errorf("%w: nil value", ErrInvalidRecord)
	case models.DrawRecord:
		return checkTyped(r)
	case *models.DrawRecord:
		if r == nil {
			return models.DrawRecord{}, fmt.Errorf("%w: nil value", ErrInvalidRecord)
		}
		return checkTyped(*r)
	case map[string]any:
		return checkObject(r)
	default:
		return models.DrawRecord{}, fmt.Errorf("%w: unexpected type %T", ErrInvalidRecord, v)
	}
}

func checkTyped(r models.DrawRecord) (models.DrawRecord, error) {
	if len(r.Numbers) != NumbersPerDraw {
		return models.DrawRecord{}, fmt.Errorf("%w: want %d numbers, got %d",
			ErrInvalidRecord, NumbersPerDraw, len(r.Numbers))
	}
	for _, n := range r.Numbers {
		if !IsValidInt(n) {
			return models.DrawRecord{}, fmt.Errorf("%w: %w: %d", ErrInvalidRecord, ErrInvalidNumber, n)
		}
	}
	return r.Clone(), nil
}

func checkObject(obj map[string]any) (models.DrawRecord, error) {
	date, ok := obj["date"].(string)
	if !ok {
		return models.DrawRecord{}, fmt.Errorf("%w: date must be a string", ErrInvalidRecord)
	}

	timestamp, ok := obj["timestamp"].(string)
	if !ok {
		return models.DrawRecord{}, fmt.Errorf("%w: timestamp must be a string", ErrInvalidRecord)
	}

	rawNumbers, ok := obj["numbers"].([]any)
	if !ok {
		return models.DrawRecord{}, fmt.Errorf("%w: numbers must be an array", ErrInvalidRecord)
	}
	if len(rawNumbers) != NumbersPerDraw {
		return models.DrawRecord{}, fmt.Errorf("%w: want %d numbers, got %d",
			ErrInvalidRecord, NumbersPerDraw, len(rawNumbers))
	}

	numbers := make([]int, 0, NumbersPerDraw)
	for _, raw := range rawNumbers {
		n, ok := asFloat(raw)
		if !ok || !IsValidNumber(n) {
			return models.DrawRecord{}, fmt.Errorf("%w: %w: %v", ErrInvalidRecord, ErrInvalidNumber, raw)
		}
		numbers = append(numbers, int(n))
	}

	return models.DrawRecord{Date: date, Numbers: numbers, Timestamp: timestamp}, nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
