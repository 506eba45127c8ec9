package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	origVersion, origCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = origVersion, origCommit })

	Version, Commit = "1.2.0", ""
	assert.Equal(t, "1.2.0", String())

	Commit = "0123456789abcdef"
	assert.Equal(t, "1.2.0 (0123456)", String())

	Commit = "abc"
	assert.Equal(t, "1.2.0 (abc)", String())
}
