package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueMap_MarshalNakedValues(t *testing.T) {
	m := ValueMap{
		"brand":  TextValue("Acme"),
		"price":  NumberValue(29.99),
		"expiry": DateValue("2025-01-31"),
		"status": OptionValue("In Stock"),
	}

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))

	assert.Equal(t, "Acme", wire["brand"])
	assert.Equal(t, 29.99, wire["price"])
	assert.Equal(t, "2025-01-31", wire["expiry"])
	assert.Equal(t, "In Stock", wire["status"])
}

func TestValueMap_ScanRoundTrip(t *testing.T) {
	m := ValueMap{
		"weight": NumberValue(2.5),
		"color":  TextValue("red"),
	}

	raw, err := m.Value()
	require.NoError(t, err)

	var scanned ValueMap
	require.NoError(t, scanned.Scan(raw))

	assert.Equal(t, 2.5, scanned["weight"].Number())
	assert.Equal(t, FieldTypeNumber, scanned["weight"].Kind)
	assert.Equal(t, "red", scanned["color"].String())
}

func TestValueMap_ScanNil(t *testing.T) {
	var m ValueMap
	require.NoError(t, m.Scan(nil))
	assert.Empty(t, m)
	assert.NotNil(t, m)
}

func TestValue_NumberFormatting(t *testing.T) {
	assert.Equal(t, "42", NumberValue(42).String())
	assert.Equal(t, "42.5", NumberValue(42.5).String())
}
