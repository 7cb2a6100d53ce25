package pipeline

import (
	"regexp"
	"strings"
)

// DefaultSlug is the heading id used when a title has no usable characters.
const DefaultSlug = "heading"

var (
	// slugUnsafe matches anything that is neither a word character nor a CJK
	// unified ideograph. Word characters are Unicode-aware, so accented Latin
	// and other scripts survive.
	slugUnsafe = regexp.MustCompile(`[^\p{L}\p{N}_\x{4e00}-\x{9fff}]`)

	slugDashes = regexp.MustCompile(`-+`)
)

// Slug derives an anchor id from heading text.
// Identical titles produce identical ids; callers needing uniqueness must
// deduplicate themselves.
func Slug(title string) string {
	s := slugUnsafe.ReplaceAllString(title, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return DefaultSlug
	}
	return strings.ToLower(s)
}
