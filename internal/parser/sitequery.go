package parser

import (
	"regexp"
	"strings"
)

// reSite matches "<preposition> <token>" where the token is a bare word
// that may contain dots (a partial or full hostname).
var reSite = regexp.MustCompile(`\b(?:on|in|from|at)\s+([a-z0-9-]+(?:\.[a-z0-9-]+)*)`)

// ParseSiteQuery extracts a site/domain filter from query. A token without
// a dot is treated as a bare site name and gets ".com" appended. Returns ""
// when no preposition+token pattern is found.
func ParseSiteQuery(query string) string {
	m := reSite.FindStringSubmatch(strings.ToLower(query))
	if m == nil {
		return ""
	}
	site := m[1]
	if !strings.Contains(site, ".") {
		site += ".com"
	}
	return site
}
