package datasystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeviceAddressForms(t *testing.T) {
	//Bare, colon and hyphen separated forms are equivalent keys
	for _, form := range []string{
		"A9612CF6BB21",
		"A9:61:2C:F6:BB:21",
		"A9-61-2C-F6-BB-21",
		"a9612cf6bb21",
		"a9:61:2c:f6:bb:21",
	} {
		address, err := ParseDeviceAddress(form)
		require.NoError(t, err, form)
		assert.Equal(t, DeviceAddress("A9612CF6BB21"), address, form)
	}
}

func TestParseDeviceAddressInvalid(t *testing.T) {
	for _, form := range []string{
		"",
		"A9612CF6BB",
		"A9612CF6BB2122",
		"not-a-mac",
		"A9:61:2C:F6:BB:ZZ",
	} {
		_, err := ParseDeviceAddress(form)
		assert.Error(t, err, form)
	}
}
