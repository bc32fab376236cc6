package schema

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Schema validation errors. Operations that would produce an invalid
// field definition are rejected with one of these and leave the
// stored schema untouched.
var (
	ErrBlankFieldName    = errors.New("field name must not be blank")
	ErrNoSelectOptions   = errors.New("select field must have at least one option")
	ErrInvalidFieldType  = errors.New("invalid field type")
	ErrUnexpectedOptions = errors.New("only select fields may have options")
)

// Options is the ordered option list of a select field, persisted as
// jsonb so order survives the round trip.
type Options []string

func (o Options) Value() (driver.Value, error) {
	if o == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(o)
}

func (o *Options) Scan(src any) error {
	if src == nil {
		*o = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Options", src)
	}
	return json.Unmarshal(data, o)
}

func (o Options) Contains(option string) bool {
	for _, candidate := range o {
		if candidate == option {
			return true
		}
	}
	return false
}

// Slugify derives the stable field identifier from a display name:
// lowercased, runs of whitespace collapsed to single underscores.
// The slug is recomputed every time the name changes.
func Slugify(name string) string {
	fields := strings.Fields(strings.TrimSpace(name))
	return strings.ToLower(strings.Join(fields, "_"))
}

// NormalizeKey reduces an arbitrary field name or extraction key to
// the form used for alias lookups: lowercased with every
// non-alphanumeric run collapsed to a single underscore.
func NormalizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastUnderscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore && b.Len() > 0 {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// ValidateDefinition checks a prospective field definition before it
// is stored. Select fields must carry options; no other type may.
func ValidateDefinition(name string, fieldType FieldType, options Options) error {
	if strings.TrimSpace(name) == "" {
		return ErrBlankFieldName
	}
	if !fieldType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFieldType, fieldType)
	}
	if fieldType == FieldTypeSelect && len(options) == 0 {
		return ErrNoSelectOptions
	}
	if fieldType != FieldTypeSelect && len(options) > 0 {
		return ErrUnexpectedOptions
	}
	return nil
}
