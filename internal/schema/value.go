package schema

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

// Value is a typed field value: a tagged union over the field types.
// Text, date and select payloads live in str; number payloads in num.
// Dates are always stored normalized as YYYY-MM-DD, select payloads
// are always a literal member of the field's options.
type Value struct {
	Kind FieldType
	str  string
	num  float64
}

func TextValue(s string) Value {
	return Value{Kind: FieldTypeText, str: s}
}

func NumberValue(n float64) Value {
	return Value{Kind: FieldTypeNumber, num: n}
}

func DateValue(isoDate string) Value {
	return Value{Kind: FieldTypeDate, str: isoDate}
}

func OptionValue(option string) Value {
	return Value{Kind: FieldTypeSelect, str: option}
}

// String returns the textual payload. For numbers it formats the
// numeral with minimal digits.
func (v Value) String() string {
	if v.Kind == FieldTypeNumber {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.str
}

func (v Value) Number() float64 {
	return v.num
}

// IsZero reports whether the value carries no payload at all. An
// absent key in a ValueMap is the canonical "no value"; IsZero only
// guards against accidentally stored empty values.
func (v Value) IsZero() bool {
	return v.str == "" && v.num == 0 && v.Kind != FieldTypeNumber
}

// MarshalJSON emits the naked raw value so the wire shape of
// fieldValues stays map[fieldID]rawValue: numbers as JSON numbers,
// everything else as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Kind == FieldTypeNumber {
		return json.Marshal(v.num)
	}
	return json.Marshal(v.str)
}

// UnmarshalJSON accepts the naked wire value. Kind fidelity beyond
// number-vs-string is restored when the map is validated against the
// owning schema.
func (v *Value) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*v = NumberValue(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("field value must be a string or number: %w", err)
	}
	*v = TextValue(s)
	return nil
}

// ValueMap maps a field slug to its coerced value. Keys that are not
// present are absent ("N/A"), never empty strings.
type ValueMap map[string]Value

// Value implements driver.Valuer so the map persists as jsonb.
func (m ValueMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for jsonb columns.
func (m *ValueMap) Scan(src any) error {
	if src == nil {
		*m = ValueMap{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ValueMap", src)
	}
	if len(data) == 0 {
		*m = ValueMap{}
		return nil
	}
	return json.Unmarshal(data, m)
}

// Clone returns a shallow copy; Value payloads are immutable.
func (m ValueMap) Clone() ValueMap {
	if m == nil {
		return nil
	}
	out := make(ValueMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
