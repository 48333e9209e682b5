package search

import (
	"fmt"
	"time"
)

// buildSearchPrompt composes the find-contractors user message. The full
// variant demands exactly five dated reviews per contractor; the fast
// variant skips reviews entirely and pushes the safety requirement into the
// prompt so fewer results are scrubbed afterwards.
func buildSearchPrompt(serviceType, location string, maxResults int, skipReviews bool) string {
	in := ""
	if location != "" {
		in = " in " + location
	}

	if skipReviews {
		return fmt.Sprintf(`I need to find %d %s contractors%s.

Please search for legitimate contractors and businesses that provide %s services.

For each contractor, provide the following information in this exact format (keep all fields as concise as possible):

CONTRACTOR 1:
Name: [Business Name]
Phone: [Phone Number]
Email: [Email Address if available]
Website: [Website URL if available]
Address: [Physical Address]
Services: [Services Offered]
Rating: [Overall Rating like 4.8/5 or 4.8 stars]
Description: [Brief Description, 1-2 sentences max]
License Status: [Active/Inactive/Unknown, and license number if available]

CRITICAL REQUIREMENTS:
1. Do NOT include customer reviews.
2. Only include websites that use HTTPS and belong to the business itself. Never include shortened, redirecting, or otherwise untrustworthy URLs; omit the website instead.
3. Each contractor MUST include their license status (Active/Inactive/Unknown) and license number if available.
4. Continue this format for all contractors.`, maxResults, serviceType, in, serviceType)
	}

	year := time.Now().Year()
	return fmt.Sprintf(`I need to find %d %s contractors%s.

Please search for legitimate contractors and businesses that provide %s services.

For each contractor, provide the following information in this exact format (keep all fields as concise as possible):

CONTRACTOR 1:
Name: [Business Name]
Phone: [Phone Number]
Email: [Email Address if available]
Website: [Website URL if available]
Address: [Physical Address]
Services: [Services Offered]
Rating: [Overall Rating like 4.8/5 or 4.8 stars]
Description: [Brief Description, 1-2 sentences max]
License Status: [Active/Inactive/Unknown, and license number if available]
Reviews:
- Reviewer: John S. | Rating: 5/5 | Review: "Excellent service, very professional" | Date: %d-01-15
- Reviewer: Sarah M. | Rating: 4/5 | Review: "Good work, arrived on time" | Date: %d-01-10
- Reviewer: Mike D. | Rating: 5/5 | Review: "Outstanding quality and fair pricing" | Date: %d-01-08
- Reviewer: Lisa R. | Rating: 4/5 | Review: "Professional team, clean work" | Date: %d-01-12
- Reviewer: David K. | Rating: 5/5 | Review: "Highly recommend, great results" | Date: %d-01-05

CRITICAL REQUIREMENTS:
1. Each contractor MUST have exactly 5 real customer reviews. If you cannot find 5, do not include the contractor at all.
2. All reviews must be real, with actual reviewer names, individual ratings, and specific review text. No placeholders or generic reviews.
3. Each review should be on a separate line with the format: Reviewer: [Name] | Rating: [Rating] | Review: "[Review text, 1-2 sentences max]" | Date: [Date]
4. Review dates must be from %d.
5. Do NOT make up or pad reviews. Only use real, verifiable reviews.
6. Each contractor MUST include their active license status (Active/Inactive/Unknown) and license number if available.
7. Continue this format for all contractors.`, maxResults, serviceType, in, serviceType, year, year, year, year, year, year)
}
