package version

import (
	"regexp"
	"testing"
)

var reSemver = regexp.MustCompile(`^v\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?$`)

func TestVersion_Format(t *testing.T) {
	// Version is embedded verbatim in JSON responses and the startup banner.
	if !reSemver.MatchString(Version) {
		t.Errorf("Version = %q, want a v-prefixed semantic version", Version)
	}
}

func TestVersion_Pattern(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"v0.1.0", true},
		{"v1.2.3-rc.1", true},
		{"v1.2.3+build.7", true},
		{"0.1.0", false},
		{"v1.2", false},
		{`v1.0.0"`, false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			if got := reSemver.MatchString(tt.version); got != tt.want {
				t.Errorf("match(%q) = %v, want %v", tt.version, got, tt.want)
			}
		})
	}
}
