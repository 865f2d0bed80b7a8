package importers

import (
	"regexp"
	"strings"

	"github.com/mrlokans/advisor/internal/entities"
)

var (
	brandSuffix = regexp.MustCompile(`(?i)\s*-\s*metastats\b`)
	spaces      = regexp.MustCompile(`\s+`)
)

// ShortenName strips the class and the site brand from a deck name, e.g.
// "Control Warrior - MetaStats " becomes "Control". A name that would become
// empty is returned trimmed but otherwise unchanged.
func ShortenName(name, class string) string {
	original := strings.TrimSpace(name)
	if class != "" {
		name = strings.ReplaceAll(name, class, "")
	}
	for _, c := range entities.Classes() {
		if c.Name == class && c.DisplayName != c.Name {
			name = strings.ReplaceAll(name, c.DisplayName, "")
		}
	}
	name = brandSuffix.ReplaceAllString(name, "")
	name = strings.TrimSpace(spaces.ReplaceAllString(name, " "))
	if name == "" {
		return original
	}
	return name
}
