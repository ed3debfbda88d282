package postgres

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTokenKey(t *testing.T) {
	keyShape := regexp.MustCompile(`^[0-9a-f]{40}$`)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		key, err := newTokenKey()
		assert.NoError(t, err)
		assert.Regexp(t, keyShape, key)
		assert.False(t, seen[key], "token keys must not repeat")
		seen[key] = true
	}
}
