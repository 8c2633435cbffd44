package table

import (
	"fmt"
	"math"
	"strconv"
)

// ValueKind defines the storage type for cell values
type ValueKind string

const (
	KindNumber  ValueKind = "number"
	KindText    ValueKind = "text"
	KindBool    ValueKind = "bool"
	KindMissing ValueKind = "missing"
)

// Value represents a single cell as a tagged union. Tabular inputs mix
// numeric, string and missing values inside one column, so the kind travels
// with the value instead of being implied by the column.
type Value struct {
	Kind    ValueKind `json:"kind"`
	Num     float64   `json:"num,omitempty"`
	Text    string    `json:"text,omitempty"`
	Boolean bool      `json:"bool,omitempty"`
}

// Number creates a numeric value
func Number(n float64) Value {
	return Value{Kind: KindNumber, Num: n}
}

// Text creates a text value; the empty string is stored as Missing
func NewText(s string) Value {
	if s == "" {
		return Missing()
	}
	return Value{Kind: KindText, Text: s}
}

// Bool creates a boolean value
func Bool(b bool) Value {
	return Value{Kind: KindBool, Boolean: b}
}

// Missing creates a missing value
func Missing() Value {
	return Value{Kind: KindMissing}
}

// IsMissing reports whether the value carries no data
func (v Value) IsMissing() bool {
	return v.Kind == KindMissing
}

// IsNumber reports whether the value is numeric
func (v Value) IsNumber() bool {
	return v.Kind == KindNumber
}

// IsText reports whether the value is textual
func (v Value) IsText() bool {
	return v.Kind == KindText
}

// IsBool reports whether the value is boolean
func (v Value) IsBool() bool {
	return v.Kind == KindBool
}

// String renders the value for pattern matching and display. Integer-valued
// numbers render without a fractional part so "018956"-style codes survive a
// numeric round trip. Missing renders as the empty string.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		if v.Num == math.Trunc(v.Num) && math.Abs(v.Num) < 1e15 {
			return strconv.FormatInt(int64(v.Num), 10)
		}
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindText:
		return v.Text
	case KindBool:
		return strconv.FormatBool(v.Boolean)
	default:
		return ""
	}
}

// FromAny coerces a dynamically typed value (JSON decode, CSV cell) into a
// tagged Value. nil and empty strings become Missing.
func FromAny(raw interface{}) Value {
	switch val := raw.(type) {
	case nil:
		return Missing()
	case Value:
		return val
	case string:
		return NewText(val)
	case float64:
		return Number(val)
	case float32:
		return Number(float64(val))
	case int:
		return Number(float64(val))
	case int32:
		return Number(float64(val))
	case int64:
		return Number(float64(val))
	case bool:
		return Bool(val)
	default:
		return NewText(fmt.Sprintf("%v", raw))
	}
}
