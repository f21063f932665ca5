package domain

// Domain is one recommendation vertical backed by its own model service.
type Domain string

const (
	// Books recommends books.
	Books Domain = "books"
	// Movies recommends movies.
	Movies Domain = "movies"
	// Travel recommends travel destinations.
	Travel Domain = "travel"
	// Stress is the stress prediction model. It has no recommendation pipeline.
	Stress Domain = "stress"
)

// DefaultTargetCount is the desired length of a recommendation list.
const DefaultTargetCount = 8

// RecommendationDomains lists the domains served by the recommendation pipeline.
func RecommendationDomains() []Domain {
	return []Domain{Books, Movies, Travel}
}

// IsRecommendation reports whether d is served by the recommendation pipeline.
func (d Domain) IsRecommendation() bool {
	switch d {
	case Books, Movies, Travel:
		return true
	}
	return false
}

// IsValid reports whether d is a known domain.
func (d Domain) IsValid() bool {
	return d.IsRecommendation() || d == Stress
}

// TitleField returns the name of the identifying field of a model item.
func (d Domain) TitleField() string {
	switch d {
	case Books:
		return "Book"
	case Movies:
		return "movie_name"
	case Travel:
		return "Place_Name"
	default:
		return "title"
	}
}

// ServiceName is the key reported for this domain's model service in heartbeat output.
func (d Domain) ServiceName() string {
	switch d {
	case Books:
		return "book_api"
	case Movies:
		return "movie_api"
	case Travel:
		return "travel_api"
	case Stress:
		return "stress_api"
	default:
		return string(d) + "_api"
	}
}

// SurveyKind names which stored survey feeds a pipeline.
type SurveyKind string

const (
	// SurveyPreferences is the recommendation preference survey.
	SurveyPreferences SurveyKind = "recommendation"
	// SurveyStress is the stress survey.
	SurveyStress SurveyKind = "stress"
)

// SurveyRecord holds a user's survey answers keyed by question id.
type SurveyRecord map[string]string

// Answer returns the answer to a question, or "" when unanswered.
func (s SurveyRecord) Answer(question string) string {
	return s[question]
}
