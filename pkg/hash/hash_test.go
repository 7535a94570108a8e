package hash

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestDigestDeterministic(t *testing.T) {
	first := Digest("ana@example.com")
	second := Digest("ana@example.com")
	assert.Equal(t, first, second)
}

func TestDigestFixedLengthHex(t *testing.T) {
	for _, input := range []string{"", "a", "ana@example.com", "30", "a much longer input with spaces and unicode: héllo 世界"} {
		out := Digest(input)
		require.True(t, hexPattern.MatchString(out), "digest of %q is %q", input, out)
	}
}

func TestDigestEmptyStringVector(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Digest(""))
}

func TestDigestDistinctInputs(t *testing.T) {
	assert.NotEqual(t, Digest("ana@example.com"), Digest("bob@example.com"))
	assert.NotEqual(t, Digest("30"), Digest("31"))
}
