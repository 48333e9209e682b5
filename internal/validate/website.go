package validate

import (
	"net/url"
	"regexp"
	"strings"
)

// Hosts operated by URL shorteners. A contractor listing pointing at one of
// these is hiding its real destination.
var shortenerHosts = map[string]bool{
	"bit.ly":      true,
	"tinyurl.com": true,
	"goo.gl":      true,
	"t.co":        true,
	"ow.ly":       true,
	"is.gd":       true,
	"buff.ly":     true,
	"rb.gy":       true,
	"cutt.ly":     true,
	"shorturl.at": true,
}

var suspiciousPatterns = []*regexp.Regexp{
	// Raw IP-address literal.
	regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`),
	// Very long random-looking alphanumeric label.
	regexp.MustCompile(`^[a-z0-9]{20,}\.`),
	// Short label mixed with 3 or more digits (xj4k29.net style).
	regexp.MustCompile(`^[a-z]{1,4}\d{3,}[a-z0-9]*\.`),
	// Very short multi-level subdomains (a.b.example.xyz).
	regexp.MustCompile(`^([a-z0-9]{1,2}\.){2,}`),
	// Hash-like hyphenated labels (a1b2-c3d4-e5f6.site).
	regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+){3,}\.`),
}

var legitimatePatterns = []*regexp.Regexp{
	// Ends in a common TLD.
	regexp.MustCompile(`\.(com|net|org|edu|gov|biz|info|us|ca|co)$`),
	// Plausible two-segment business domain.
	regexp.MustCompile(`^[a-z][a-z0-9\-]{1,62}\.[a-z]{2,}$`),
}

// IsSuspiciousDomain classifies the domain of rawURL. A domain is judged
// legitimate only if it avoids every suspicious pattern and matches at least
// one legitimate pattern. Anything that fails to parse is suspicious.
func IsSuspiciousDomain(rawURL string) bool {
	host := hostOf(rawURL)
	if host == "" {
		return true
	}

	host = strings.ToLower(host)
	host = strings.TrimPrefix(host, "www.")

	for _, re := range suspiciousPatterns {
		if re.MatchString(host) {
			return true
		}
	}
	if shortenerHosts[host] {
		return true
	}

	for _, re := range legitimatePatterns {
		if re.MatchString(host) {
			return false
		}
	}
	return true
}

// ValidateWebsiteSafety checks that rawURL uses HTTPS and has a
// non-suspicious domain. A URL with no scheme is treated as https before
// checking; an explicit http URL fails. The reason string is human-readable
// and safe to surface; this function never returns an error.
func ValidateWebsiteSafety(rawURL string) (bool, string) {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return false, "no website provided"
	}

	if !strings.Contains(s, "://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return false, "website URL could not be parsed"
	}
	if u.Scheme != "https" {
		return false, "website does not use HTTPS"
	}
	if IsSuspiciousDomain(s) {
		return false, "website domain looks suspicious or unverifiable"
	}

	return true, "website passed safety checks"
}

// CleanWebsiteURL normalizes a raw website string to canonical https form
// and drops it entirely when it fails safety validation. The return value
// is either a well-formed https URL or "".
func CleanWebsiteURL(rawURL string) string {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return ""
	}

	switch {
	case strings.HasPrefix(s, "https://"), strings.HasPrefix(s, "http://"):
		// Keep the declared scheme; safety validation rejects bare http.
	case strings.HasPrefix(s, "www."):
		s = "https://" + s
	default:
		s = "https://" + s
	}

	if ok, _ := ValidateWebsiteSafety(s); !ok {
		return ""
	}
	return s
}

func hostOf(rawURL string) string {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
