package extract

import (
	"iter"
	"regexp"
	"slices"
)

// urlPattern matches http and https URLs over a broad character class:
// alphanumerics, the `$`..`_` range, `@.&+!*\(),` and percent-encoded bytes.
var urlPattern = regexp.MustCompile(`https?://(?:[a-zA-Z]|[0-9]|[$-_@.&+]|[!*\\(\\),]|(?:%[0-9a-fA-F][0-9a-fA-F]))+`)

// URLs yields the URLs found in text from left to right.
// Duplicates are kept and nothing is normalized.
func URLs(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		rest := text
		for rest != "" {
			loc := urlPattern.FindStringIndex(rest)
			if loc == nil {
				return
			}
			if !yield(rest[loc[0]:loc[1]]) {
				return
			}
			rest = rest[loc[1]:]
		}
	}
}

// CollectURLs returns every URL in text, never nil.
func CollectURLs(text string) []string {
	urls := slices.Collect(URLs(text))
	if urls == nil {
		return []string{}
	}
	return urls
}
