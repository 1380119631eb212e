package strapi

import "regexp"

// imageLinkPattern matches markdown image syntax: ![alt](path)
var imageLinkPattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]*)\)`)

// RewriteImageLinks prefixes base to the path of every markdown image link
// in s. It is a pure string substitution; a string with no image syntax is
// returned unchanged.
func RewriteImageLinks(s, base string) string {
	if base == "" || !imageLinkPattern.MatchString(s) {
		return s
	}
	return imageLinkPattern.ReplaceAllStringFunc(s, func(match string) string {
		sub := imageLinkPattern.FindStringSubmatch(match)
		return "![" + sub[1] + "](" + base + sub[2] + ")"
	})
}

// rewriteEntryLinks applies RewriteImageLinks to every top-level string
// field of item, in place. Non-string fields are left untouched; the rewrite
// does not descend into nested structures.
func rewriteEntryLinks(item map[string]any, base string) {
	for name, value := range item {
		if s, ok := value.(string); ok {
			item[name] = RewriteImageLinks(s, base)
		}
	}
}
