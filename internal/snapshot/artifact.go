package snapshot

import (
	"fmt"
	"net/url"
	"strings"
)

// Artifact is a downloadable restore artifact, split into the directory URL
// and the file name within it.
type Artifact struct {
	// BaseURL includes the trailing slash.
	BaseURL string
	Name    string
}

// URL reassembles the full download URL.
func (a Artifact) URL() string {
	return a.BaseURL + a.Name
}

// ParseArtifact splits a delivery URL at its final "/".
func ParseArtifact(raw string) (Artifact, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Artifact{}, fmt.Errorf("parsing delivery url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Artifact{}, fmt.Errorf("delivery url %q: unsupported scheme %q", raw, u.Scheme)
	}

	i := strings.LastIndex(raw, "/")
	if i < 0 || i == len(raw)-1 {
		return Artifact{}, fmt.Errorf("delivery url %q has no file name", raw)
	}
	return Artifact{BaseURL: raw[:i+1], Name: raw[i+1:]}, nil
}
