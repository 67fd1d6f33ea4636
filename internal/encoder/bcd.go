package encoder

import (
	"fmt"
)

const (
	// MinComponent is the smallest representable version component.
	MinComponent = 0
	// MaxComponent is the largest representable version component (one byte).
	MaxComponent = 255

	// bitsPerComponent is the width of one packed component.
	bitsPerComponent = 8
	// componentMask extracts one packed component.
	componentMask = 0xFF
)

// ComponentNames lists the packed components, most significant first.
//
//nolint:gochecknoglobals // Read-only lookup table.
var ComponentNames = [4]string{"major", "minor", "patch", "build"}

// EncodeBCD packs four components into one 32-bit integer as
// (major<<24)|(minor<<16)|(patch<<8)|build.
// It fails with a *RangeError naming the first component outside [0, 255].
func EncodeBCD(major, minor, patch, build int) (uint32, error) {
	var packed uint32

	for i, value := range [4]int{major, minor, patch, build} {
		if err := checkComponent(i, value); err != nil {
			return 0, err
		}

		packed = packed<<bitsPerComponent | uint32(value) //nolint:gosec // Range checked above.
	}

	return packed, nil
}

// DecodeBCD unpacks the four components produced by EncodeBCD.
func DecodeBCD(packed uint32) (major, minor, patch, build int) {
	return int(packed >> 24 & componentMask),
		int(packed >> 16 & componentMask),
		int(packed >> 8 & componentMask),
		int(packed & componentMask)
}

// FormatBCD renders a packed version as an uppercase hex literal,
// e.g. 0x01010200UL with literalSuffix "UL".
func FormatBCD(packed uint32, literalSuffix string) string {
	return fmt.Sprintf("0x%08X%s", packed, literalSuffix)
}

// checkComponent validates the component at position i.
func checkComponent(i, value int) error {
	if value < MinComponent || value > MaxComponent {
		return &RangeError{
			Component: ComponentNames[i],
			Value:     value,
		}
	}

	return nil
}
