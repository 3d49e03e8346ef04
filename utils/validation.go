package utils

import "fmt"

const allowedKeyChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_-:.@+/"

// allowedChars is a precomputed table for O(1) character checks
var allowedChars [128]bool

func init() {
	for _, c := range allowedKeyChars {
		allowedChars[c] = true
	}
}

// ValidateKeyPart checks that value can be embedded in a storage key:
// non-empty, at most maxLength bytes, printable ASCII from a safe set.
func ValidateKeyPart(value, fieldName string, maxLength int) error {
	if len(value) == 0 {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	if maxLength > 0 && len(value) > maxLength {
		return fmt.Errorf("%s cannot exceed %d bytes, got %d bytes", fieldName, maxLength, len(value))
	}

	for i, r := range value {
		if r >= 128 || !allowedChars[r] {
			return fmt.Errorf("%s contains invalid character %q at position %d", fieldName, r, i)
		}
	}
	return nil
}
