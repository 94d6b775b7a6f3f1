package tenant

import (
	"regexp"
	"strings"
)

// MaxSubfolderLength caps subfolder identifiers at DNS-label length so the
// same tenant name works for subdomain routing later, and bounds the cost of
// validation on hostile input.
const MaxSubfolderLength = 63

// Subfolders must start alphanumeric and may contain hyphens. Keeping the
// character set URL-safe means segments never need escaping when mounted.
var subfolderPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*$`)

// ValidSubfolder reports whether s is an acceptable tenant subfolder segment.
func ValidSubfolder(s string) bool {
	if s == "" || len(s) > MaxSubfolderLength {
		return false
	}
	return subfolderPattern.MatchString(s)
}

// SplitSubfolder parses a request path of the form /<prefix>/<subfolder>/rest
// and returns the subfolder segment plus the remainder of the path. ok is
// false when the path does not live under the prefix at all, which means the
// request belongs to the public tenant.
//
// The remainder always begins with "/" so it can be served directly by a
// tenant router mounted at root.
func SplitSubfolder(path, prefix string) (subfolder, rest string, ok bool) {
	prefixPath := "/" + strings.Trim(prefix, "/") + "/"
	if !strings.HasPrefix(path, prefixPath) {
		return "", "", false
	}

	tail := path[len(prefixPath):]
	if idx := strings.IndexByte(tail, '/'); idx >= 0 {
		subfolder, rest = tail[:idx], tail[idx:]
	} else {
		subfolder, rest = tail, "/"
	}
	return subfolder, rest, true
}
