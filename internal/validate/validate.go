// Package validate holds pure syntactic checks for contact data extracted
// from search responses. Nothing here touches the network: email validation
// is shape-only, phone validation covers North American punctuation
// variants, and website safety is a domain heuristic, not a reachability
// probe.
package validate

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`^[\w.\-]+@[\w\-]+(\.[\w\-]+)*\.[A-Za-z]{2,}$`)

	// Accepts (123) 456-7890, 123-456-7890, 123.456.7890, +1 123 456 7890.
	phoneRe = regexp.MustCompile(`^(\+?1[\s.\-]?)?\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}$`)
)

// IsValidEmail reports whether s has a plausible email shape. No DNS or
// deliverability check is performed.
func IsValidEmail(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

// IsValidPhone reports whether s matches a common North American phone
// number format.
func IsValidPhone(s string) bool {
	return phoneRe.MatchString(strings.TrimSpace(s))
}

// IsValidWebsite reports whether s parses as an http or https URL with a
// host component.
func IsValidWebsite(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
