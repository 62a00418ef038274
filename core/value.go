package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ValueKind tags the dynamic type held by a Value.
type ValueKind int

const (
	// KindNull is an absent or SQL NULL value.
	KindNull ValueKind = iota
	// KindText is a string value.
	KindText
	// KindNumber is a numeric value.
	KindNumber
	// KindBool is a boolean value.
	KindBool
	// KindStructured is a nested object or list.
	KindStructured
)

// Value is a tagged row value.
type Value struct {
	Kind       ValueKind
	Text       string
	Number     float64
	Bool       bool
	Structured any
}

// Text wraps a string.
func Text(s string) Value { return Value{Kind: KindText, Text: s} }

// Number wraps a float.
func Number(f float64) Value { return Value{Kind: KindNumber, Number: f} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Null returns the null value.
func Null() Value { return Value{Kind: KindNull} }

// Structured wraps a nested object or list.
func Structured(v any) Value { return Value{Kind: KindStructured, Structured: v} }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// String renders the value as text for embedding and scoring.
func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindStructured:
		data, err := json.Marshal(v.Structured)
		if err != nil {
			return fmt.Sprint(v.Structured)
		}
		return string(data)
	default:
		return ""
	}
}

// ValueOf converts a value produced by database/sql scanning or JSON decoding.
func ValueOf(raw any) Value {
	switch t := raw.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case string:
		return Text(t)
	case []byte:
		return Text(string(t))
	case bool:
		return Bool(t)
	case int:
		return Number(float64(t))
	case int32:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case float32:
		return Number(float64(t))
	case float64:
		return Number(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Text(t.String())
		}
		return Number(f)
	case time.Time:
		return Text(t.UTC().Format(time.RFC3339Nano))
	default:
		return Structured(t)
	}
}

// Row maps field names to values.
type Row map[string]Value

// Lookup returns the value for field and whether the field is present.
func (r Row) Lookup(field string) (Value, bool) {
	v, ok := r[field]
	return v, ok
}

// Has reports whether every named field is present.
func (r Row) Has(fields ...string) bool {
	for _, f := range fields {
		if _, ok := r[f]; !ok {
			return false
		}
	}
	return true
}

// RowFromMap converts a generic map into a Row.
func RowFromMap(m map[string]any) Row {
	row := make(Row, len(m))
	for k, v := range m {
		row[k] = ValueOf(v)
	}
	return row
}
