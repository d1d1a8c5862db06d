package datasystem

import (
	"encoding/hex"
	"fmt"
	"strings"
)

//DeviceAddress is the canonical rendering of a 6-byte physical address: twelve
//uppercase hex digits with no separators, matching how devices report
//themselves. Accepted textual input forms are bare hex, colon-separated and
//hyphen-separated; all three normalize to the same canonical key.
type DeviceAddress string

func ParseDeviceAddress(s string) (DeviceAddress, error) {
	stripped := strings.NewReplacer(":", "", "-", "").Replace(s)

	if len(stripped) != 12 {
		return "", fmt.Errorf("invalid device address: %s", s)
	}

	raw, err := hex.DecodeString(stripped)
	if err != nil {
		return "", fmt.Errorf("invalid device address: %s", s)
	}

	return DeviceAddress(strings.ToUpper(hex.EncodeToString(raw))), nil
}

func (a DeviceAddress) String() string {
	return string(a)
}
