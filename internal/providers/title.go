package providers

import (
	"regexp"
	"strings"
)

// selfWindowMarker identifies the application's own windows. Titles
// containing it are never classified, which prevents self-observation
// loops.
const selfWindowMarker = "Mediascope"

// moreTabsPattern matches the browser's "... and N more tabs" indicator
// (English and German variants).
var moreTabsPattern = regexp.MustCompile(` (?:and \d+ more tabs?|und \d+ weitere Seiten)`)

// browserSuffixes are generic browser-chrome endings cut from titles
var browserSuffixes = []string{
	" - Google Chrome",
	" - Mozilla Firefox",
	" - Microsoft Edge",
	" - Personal",
}

// CleanWindowTitle strips browser chrome and provider phrases from a raw
// window title. Returns "" for the application's own windows or when
// nothing remains after cleaning.
func CleanWindowTitle(title string, removePhrases []string) string {
	if strings.Contains(title, selfWindowMarker) {
		return ""
	}

	title = moreTabsPattern.ReplaceAllString(title, "")

	for _, phrase := range removePhrases {
		if idx := strings.Index(title, phrase); idx >= 0 {
			title = title[:idx]
		}
	}

	for _, suffix := range browserSuffixes {
		if idx := strings.Index(title, suffix); idx >= 0 {
			title = title[:idx]
		}
	}

	return strings.TrimSpace(title)
}
