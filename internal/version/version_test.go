package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, Version)
	if Version != "unknown" {
		t.Logf("Version is: %s (set via ldflags)", Version)
	}
}

func TestBuildInfo(t *testing.T) {
	assert.NotEmpty(t, BuildTime)
	assert.NotEmpty(t, GitCommit)
}

func TestUserAgent(t *testing.T) {
	assert.Equal(t, "mdpublish/"+Version, UserAgent())
}
