package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONMap_RoundTrip(t *testing.T) {
	m := JSONMap{"city": "Moscow", "street": "Arbat 1"}

	value, err := m.Value()
	require.NoError(t, err)

	var decoded JSONMap
	require.NoError(t, decoded.Scan(value))
	require.Equal(t, "Moscow", decoded["city"])
	require.Equal(t, "Arbat 1", decoded["street"])
}

func TestJSONMap_ScanNil(t *testing.T) {
	var decoded JSONMap
	require.NoError(t, decoded.Scan(nil))
	require.Nil(t, decoded)
}
