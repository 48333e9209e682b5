package model

// ReviewSource tags where review data was obtained.
const ReviewSource = "Web Search"

// DefaultQualityScore is the neutral midpoint assigned until the quality
// scorer produces a real value, and whenever scoring degrades.
const DefaultQualityScore = 5.0

// Review is a single customer testimonial attached to a contractor.
type Review struct {
	ReviewerName string `json:"reviewer_name"`
	Rating       string `json:"rating"`
	ReviewText   string `json:"review_text"`
	Date         string `json:"date,omitempty"`
	Source       string `json:"source"`
}

// NewReview builds a review, or reports false when the required fields are
// missing. A review without both a reviewer name and text is never stored
// partially.
func NewReview(name, rating, text, date string) (Review, bool) {
	if name == "" || text == "" {
		return Review{}, false
	}
	return Review{
		ReviewerName: name,
		Rating:       rating,
		ReviewText:   text,
		Date:         date,
		Source:       ReviewSource,
	}, true
}

// Contractor describes one service business found via web search.
type Contractor struct {
	Name          string   `json:"name"`
	Phone         string   `json:"phone,omitempty"`
	Email         string   `json:"email,omitempty"`
	Website       string   `json:"website,omitempty"`
	Address       string   `json:"address,omitempty"`
	Services      string   `json:"services,omitempty"`
	Rating        string   `json:"rating,omitempty"`
	Description   string   `json:"description,omitempty"`
	LicenseStatus string   `json:"license_status,omitempty"`
	Reviews       []Review `json:"reviews"`
	QualityScore  float64  `json:"quality_score"`
}

// NewContractor builds a contractor with the neutral default quality score.
func NewContractor(name string) Contractor {
	return Contractor{
		Name:         name,
		QualityScore: DefaultQualityScore,
	}
}
