// Package encoder derives every representation of a version number.
//
// Four components (major, minor, patch, build) are packed one byte each into
// a 32-bit integer, most significant byte first, so versions compare as plain
// integers. The same components produce the dotted display string, which may
// carry a pre-release suffix. The VCS hash is a 32-bit value rendered as a
// hex literal; an absent hash renders as the all-zero sentinel.
//
// All functions are pure: hash and timestamp acquisition happen elsewhere.
package encoder
