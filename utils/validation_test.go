package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateKeyPart(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		errorMsg string
	}{
		{name: "plain id", value: "example_id"},
		{name: "uuid", value: "3fa85f64-5717-4562-b3fc-2c963f66afa6"},
		{name: "special characters", value: "doc:2020/01@host+1.x"},
		{name: "empty", value: "", errorMsg: "document id cannot be empty"},
		{name: "too long", value: strings.Repeat("a", 129), errorMsg: "cannot exceed 128 bytes, got 129 bytes"},
		{name: "space", value: "doc 1", errorMsg: "invalid character ' ' at position 3"},
		{name: "non ascii", value: "докум", errorMsg: "invalid character 'д' at position 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKeyPart(tt.value, "document id", 128)
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errorMsg)
		})
	}
}

func TestValidateKeyPart_NoMaxLength(t *testing.T) {
	assert.NoError(t, ValidateKeyPart(strings.Repeat("a", 1000), "key", 0))
}
