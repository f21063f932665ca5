package preference

import "github.com/kailas-cloud/spotlight/internal/domain"

func (b *Builder) movies(s domain.SurveyRecord) map[string]any {
	q := map[string]any{}

	switch s.Answer("movie_first_question") {
	case "Last 5 years":
		q["year"] = 2019
	case "Last 10 years":
		q["year"] = 2014
	case "Last 20 years":
		q["year"] = 2004
	default: // "Any year"
		q["year"] = 1900
	}

	switch s.Answer("movie_second_question") {
	case "Short (less than 90 minutes)":
		q["runtime"] = 90
	case "Long (more than 150 minutes)":
		q["runtime"] = 500
	default: // "Regular (less than 150 minutes)"
		q["runtime"] = 150
	}

	q["genre"] = s.Answer("movie_third_question")

	// A non-numeric answer is sent as null.
	q["rating"] = nil
	if rating, ok := leadingInt(s.Answer("movie_fourth_question")); ok {
		q["rating"] = rating
	}

	if director := s.Answer("movie_fifth_question"); director != NeedRecommendations {
		q["director"] = director
	}
	if star := s.Answer("movie_sixth_question"); star != NeedRecommendations {
		q["star"] = star
	}

	switch s.Answer("movie_seventh_question") {
	case "Movies that are lesser-known":
		q["votes"] = b.randInt(0, 5000)
	case "Popular movies that many people know about":
		q["votes"] = b.randInt(10001, 15000)
	default: // "Movies that are talked about quite often"
		q["votes"] = b.randInt(5001, 10000)
	}

	return q
}
