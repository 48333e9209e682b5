// Package parse converts the free-text response of the contractor search
// model into structured records. The requested CONTRACTOR/field format is a
// soft contract only, so parsing is layered: a strict section parser, a
// strict pipe-delimited review grammar, loose per-line review grammars, and
// a whole-document heuristic scan as the last resort. Each layer is a pure
// function; the first one to produce a result wins.
package parse

import (
	"regexp"
	"strings"

	"github.com/santo-labs/santoscore/internal/model"
	"github.com/santo-labs/santoscore/internal/validate"
)

var sectionRe = regexp.MustCompile(`CONTRACTOR\s+\d+:`)

// fieldLabels are the recognized labels outside a reviews block, lowercase.
var fieldLabels = []string{
	"name", "phone", "email", "website", "address",
	"services", "rating", "description", "license status",
}

// Contractors parses raw search-model output into contractor records.
// Sections with no name are dropped. When the section format yields nothing
// at all, the heuristic document scan takes over.
func Contractors(raw string) []model.Contractor {
	var contractors []model.Contractor

	sections := sectionRe.Split(raw, -1)
	for _, section := range sections[1:] {
		if strings.TrimSpace(section) == "" {
			continue
		}
		if c, ok := parseSection(section); ok {
			contractors = append(contractors, c)
		}
	}

	if len(contractors) == 0 {
		contractors = scanFreeform(raw)
	}

	return contractors
}

// parseSection extracts one contractor from the text between two CONTRACTOR
// markers. It reports false when the section has no name.
func parseSection(text string) (model.Contractor, bool) {
	c := model.NewContractor("")
	inReviews := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)

		if strings.HasPrefix(lower, "reviews:") {
			inReviews = true
			continue
		}

		if inReviews {
			// A recognized field label ends the reviews block, even without
			// a blank line in between. Models often append Rating or License
			// Status after the reviews, so this keeps malformed output
			// self-correcting.
			if startsWithFieldLabel(lower) {
				inReviews = false
			} else {
				// The strict pipe grammar only applies to lines carrying the
				// requested Reviewer prefix. Everything else goes to the
				// loose grammars, so a piped non-review line cannot have its
				// first segment promoted to a reviewer name.
				if hasReviewerPrefix(line) {
					if rev, ok := parseReviewLine(line); ok {
						c.Reviews = append(c.Reviews, rev)
						continue
					}
				}
				if rev, ok := parseLooseReview(line); ok {
					c.Reviews = append(c.Reviews, rev)
				}
				continue
			}
		}

		label, value, ok := splitField(line, lower)
		if !ok {
			continue
		}
		switch label {
		case "name":
			c.Name = value
		case "phone":
			c.Phone = value
		case "email":
			c.Email = value
		case "website":
			c.Website = validate.CleanWebsiteURL(value)
		case "address":
			c.Address = value
		case "services":
			c.Services = value
		case "rating":
			c.Rating = value
		case "description":
			c.Description = value
		case "license status":
			c.LicenseStatus = value
		}
	}

	if c.Name == "" {
		return model.Contractor{}, false
	}
	return c, true
}

func startsWithFieldLabel(lower string) bool {
	for _, label := range fieldLabels {
		if strings.HasPrefix(lower, label+":") {
			return true
		}
	}
	return false
}

// splitField splits a "Label: value" line on the first colon and reports the
// lowercase label with the trimmed remainder.
func splitField(line, lower string) (label, value string, ok bool) {
	for _, l := range fieldLabels {
		if strings.HasPrefix(lower, l+":") {
			rest := line[len(l)+1:]
			return l, strings.TrimSpace(rest), true
		}
	}
	return "", "", false
}
