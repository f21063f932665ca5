package preference

import "github.com/kailas-cloud/spotlight/internal/domain"

func (b *Builder) books(s domain.SurveyRecord) map[string]any {
	first := s.Answer("book_first_question")
	second := s.Answer("book_second_question")
	third := s.Answer("book_third_question")
	fourth := s.Answer("book_fourth_question")

	q := map[string]any{}
	if first == NeedRecommendations {
		q["text"] = RandomText
	} else {
		q["text"] = first
	}

	if second != NeedRecommendations {
		q["author"] = second
	}

	if third != NeedRecommendations && first == NeedRecommendations {
		q["text"] = third
	}

	// Star answers never reach the model: the rating is only ever set, to 3,
	// when the user has no preference.
	if fourth == NoPreferences {
		q["rating_preference"] = 3
	}

	return q
}
