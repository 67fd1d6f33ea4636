package encoder

import (
	"errors"

	"github.com/oshokin/verstamp/internal/domain/release"
)

// Encoded holds every representation derived from one VersionNumber.
type Encoded struct {
	// BCD is the packed 32-bit version.
	BCD uint32
	// Dotted is "major.minor.patch.build".
	Dotted string
	// Info is Dotted followed by the suffix.
	Info string
	// Hash is the 32-bit VCS hash, zero when absent.
	Hash uint32
	// Timestamp is the build time in TimestampLayout.
	Timestamp string
}

// Validate reports every problem with v: out of range components
// (as *RangeError) and a malformed VCS hash. Problems are joined.
func Validate(v *release.VersionNumber) error {
	var errs []error

	for i, value := range v.Components() {
		if err := checkComponent(i, value); err != nil {
			errs = append(errs, err)
		}
	}

	if _, err := ParseHash(v.VCSHash); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Encode validates v and derives all of its representations.
func Encode(v *release.VersionNumber) (*Encoded, error) {
	if err := Validate(v); err != nil {
		return nil, err
	}

	packed, err := EncodeBCD(v.Major, v.Minor, v.Patch, v.Build)
	if err != nil {
		return nil, err
	}

	hash, err := ParseHash(v.VCSHash)
	if err != nil {
		return nil, err
	}

	dotted := FormatDotted(v.Major, v.Minor, v.Patch, v.Build)

	return &Encoded{
		BCD:       packed,
		Dotted:    dotted,
		Info:      FormatInfo(dotted, v.Suffix),
		Hash:      hash,
		Timestamp: FormatTimestamp(v.BuildTimestamp),
	}, nil
}
