package preference

import "github.com/kailas-cloud/spotlight/internal/domain"

// bucket maps a categorical answer to a random value inside the answer's range.
type bucket struct {
	answer string
	lo, hi int
}

func (b *Builder) pick(answer string, buckets []bucket, fallback bucket) int {
	for _, bk := range buckets {
		if bk.answer == answer {
			return b.randInt(bk.lo, bk.hi)
		}
	}
	return b.randInt(fallback.lo, fallback.hi)
}

func (b *Builder) stress(s domain.SurveyRecord) map[string]any {
	q := map[string]any{}

	sleep, _ := leadingInt(s.Answer("stress_first_question"))
	q["sleep_duration"] = sleep

	q["sleep_quality"] = b.pick(s.Answer("stress_second_question"), []bucket{
		{"Poor", 1, 4}, {"Fair", 5, 7}, {"Good", 8, 10},
	}, bucket{lo: 5, hi: 7})

	q["physical_activity"] = b.pick(s.Answer("stress_third_question"), []bucket{
		{"Lightly Active", 10, 40}, {"Moderately Active", 41, 70}, {"Heavily Active", 71, 100},
	}, bucket{lo: 41, hi: 70})

	switch s.Answer("stress_fourth_question") {
	case "Overweight and Underweight":
		q["bmi"] = 1
	case "Obesity":
		q["bmi"] = 2
	default: // "Normal"
		q["bmi"] = 0
	}

	q["blood_pressure"] = b.pick(s.Answer("stress_fifth_question"), []bucket{
		{"Low", 0, 7}, {"Normal", 8, 16}, {"High", 17, 24},
	}, bucket{lo: 8, hi: 16})

	q["heart_rate"] = b.pick(s.Answer("stress_sixth_question"), []bucket{
		{"Low", 30, 59}, {"Normal", 60, 79}, {"High", 80, 95},
	}, bucket{lo: 60, hi: 79})

	q["daily_steps"] = b.pick(s.Answer("stress_seventh_question"), []bucket{
		{"Rarely", 1000, 4000}, {"Occasionally", 4001, 7000}, {"Frequently", 7001, 10000},
	}, bucket{lo: 4001, hi: 7000})

	if s.Answer("stress_eight_question") == "Yes" {
		q["sleep_disorder"] = 1
	} else {
		q["sleep_disorder"] = 0
	}

	return q
}
