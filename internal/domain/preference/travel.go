package preference

import "github.com/kailas-cloud/spotlight/internal/domain"

func (b *Builder) travel(s domain.SurveyRecord) map[string]any {
	first := s.Answer("tour_first_question")
	second := s.Answer("tour_second_question")

	text := first
	if first == NeedRecommendations {
		text = RandomText
	}
	if second != NeedRecommendations {
		text += " " + second
	}
	text += " " + s.Answer("tour_third_question")

	return map[string]any{
		"text":              text,
		"city":              s.Answer("tour_fourth_question"),
		"rating_preference": scalar(s.Answer("tour_fifth_question")),
		"review_preference": scalar(s.Answer("tour_sixth_question")),
	}
}
