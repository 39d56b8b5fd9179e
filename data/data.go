// Package data holds seed content compiled into the binary.
package data

import (
	"embed"
	"fmt"
)

//go:embed infopages/*.html
var infoPages embed.FS

// InfoPageSeed returns the default HTML body for an info page slug.
func InfoPageSeed(slug string) (string, error) {
	content, err := infoPages.ReadFile(fmt.Sprintf("infopages/%s.html", slug))
	if err != nil {
		return "", fmt.Errorf("no seed content for slug %q: %w", slug, err)
	}
	return string(content), nil
}
