package parse

import (
	"regexp"
	"strings"

	"github.com/santo-labs/santoscore/internal/model"
	"github.com/santo-labs/santoscore/internal/validate"
)

// Heuristic patterns for the last-resort document scan, used when the model
// ignored the sectioned format entirely.
var (
	businessNameRe = regexp.MustCompile(`^[A-Z][A-Za-z\s&\-'.,()]+(?:LLC|Inc|Corporation|Corp|Company|Co\.|Services|Solutions|Group)?$`)
	phoneScanRe    = regexp.MustCompile(`(?:\+?1[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`)
	emailScanRe    = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	websiteScanRe  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	addressScanRe  = regexp.MustCompile(`\d+\s+[A-Za-z\s]+(?:St|Street|Ave|Avenue|Rd|Road|Blvd|Boulevard|Dr|Drive|Ln|Lane|Way|Ct|Court)\b`)
	ratingScanRe   = regexp.MustCompile(`(?i)\d+\.?\d*\s*(?:/\s*5|\s*stars?|\s*out\s*of\s*5)`)
)

// scanFreeform walks the document line by line. A business-name-shaped line
// opens a new contractor record; every following line is scanned
// independently for contact, rating, and review fragments, which attach to
// the open record until the next name line.
func scanFreeform(raw string) []model.Contractor {
	var contractors []model.Contractor
	var current *model.Contractor

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if looksLikeBusinessName(line) {
			if current != nil && current.Name != "" {
				contractors = append(contractors, *current)
			}
			c := model.NewContractor(line)
			current = &c
			continue
		}
		if current == nil {
			continue
		}

		if m := phoneScanRe.FindString(line); m != "" {
			current.Phone = m
		}
		if m := emailScanRe.FindString(line); m != "" {
			current.Email = m
		}
		if m := websiteScanRe.FindString(line); m != "" {
			current.Website = validate.CleanWebsiteURL(m)
		}
		if m := addressScanRe.FindString(line); m != "" {
			current.Address = line
		}
		if m := ratingScanRe.FindString(line); m != "" {
			current.Rating = m
		}
		if rev, ok := parseLooseReview(line); ok {
			current.Reviews = append(current.Reviews, rev)
		}
	}

	if current != nil && current.Name != "" {
		contractors = append(contractors, *current)
	}

	return contractors
}

// looksLikeBusinessName matches capitalized words with an optional corporate
// suffix, between 6 and 99 characters.
func looksLikeBusinessName(line string) bool {
	return len(line) > 5 && len(line) < 100 && businessNameRe.MatchString(line)
}
