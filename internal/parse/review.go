package parse

import (
	"regexp"
	"strings"

	"github.com/santo-labs/santoscore/internal/model"
)

// parseReviewLine parses the strict requested format:
//
//	- Reviewer: John S. | Rating: 5/5 | Review: "Great work" | Date: 2026-01-15
//
// The leading dash and "Reviewer:" label are optional noise; segments are
// pipe-delimited and classified by their own label prefix. An unlabeled,
// non-empty first segment is the reviewer name. Lines missing a name or
// review text yield nothing.
// hasReviewerPrefix reports whether a line carries the requested
// "- Reviewer:" / "Reviewer:" marker that admits it to the strict pipe
// grammar. Other lines only get the loose grammars.
func hasReviewerPrefix(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, "- "), "Reviewer:")
}

func parseReviewLine(line string) (model.Review, bool) {
	line = strings.TrimLeft(line, "- ")
	line = strings.TrimSpace(strings.TrimPrefix(line, "Reviewer:"))

	var name, rating, text, date string
	for _, part := range strings.Split(line, "|") {
		part = strings.TrimSpace(part)
		lower := strings.ToLower(part)
		switch {
		case strings.HasPrefix(lower, "rating:"):
			rating = strings.TrimSpace(part[len("rating:"):])
		case strings.HasPrefix(lower, "review:"):
			text = strings.Trim(strings.TrimSpace(part[len("review:"):]), `"'`)
		case strings.HasPrefix(lower, "date:"):
			date = strings.TrimSpace(part[len("date:"):])
		case name == "" && part != "":
			name = part
		}
	}

	return model.NewReview(name, rating, text, date)
}

// Loose review grammars, tried in order. These cover the formats the model
// falls into when it ignores the pipe-delimited instruction.
var (
	// John S. - 5/5 stars - "Great service!"
	looseDashRe = regexp.MustCompile(`([A-Z][a-z]+\s+[A-Z]\.?)\s*[-–]\s*(\d+(?:\.\d+)?(?:/5|/10|\s*stars?))\s*[-–]\s*["']?([^"']+)["']?`)

	// Sarah M. (4/5): Excellent work done quickly
	looseParenRe = regexp.MustCompile(`([A-Z][a-z]+\s+[A-Z]\.?)\s*\((\d+(?:\.\d+)?(?:/5|/10|\s*stars?))\):\s*["']?([^"']+)["']?`)

	// Independent fragments located anywhere in the line.
	quotedSpanRe = regexp.MustCompile(`["']([^"']{20,})["']`)
	nameTokenRe  = regexp.MustCompile(`([A-Z][a-z]+\s+[A-Z]\.?)`)
	ratingRe     = regexp.MustCompile(`(\d+(?:\.\d+)?(?:/5|/10|\s*stars?))`)
)

// parseLooseReview tries the loose grammars against a line, first match
// wins. The last grammar needs both a 20+ character quoted span and a
// name-shaped token; the rating is optional there.
func parseLooseReview(line string) (model.Review, bool) {
	if m := looseDashRe.FindStringSubmatch(line); m != nil {
		return model.NewReview(m[1], m[2], strings.TrimSpace(m[3]), "")
	}

	if m := looseParenRe.FindStringSubmatch(line); m != nil {
		return model.NewReview(m[1], m[2], strings.TrimSpace(m[3]), "")
	}

	quote := quotedSpanRe.FindStringSubmatch(line)
	name := nameTokenRe.FindStringSubmatch(line)
	if quote == nil || name == nil {
		return model.Review{}, false
	}
	rating := ""
	if m := ratingRe.FindStringSubmatch(line); m != nil {
		rating = m[1]
	}
	return model.NewReview(name[1], rating, quote[1], "")
}
