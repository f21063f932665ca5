package preference

import (
	"strings"
	"testing"

	"github.com/kailas-cloud/spotlight/internal/domain"
)

// lowest always returns the lower bound so range-valued answers are deterministic.
func lowest(lo, _ int) int { return lo }

func get(t *testing.T, q domain.PreferenceQuery, key string) any {
	t.Helper()
	v, ok := q.Get(key)
	if !ok {
		t.Fatalf("expected field %q in %v", key, q.Fields())
	}
	return v
}

func TestBuild_Books(t *testing.T) {
	b := New()

	tests := []struct {
		name       string
		survey     domain.SurveyRecord
		wantText   string
		wantAuthor any
		wantRating any
	}{
		{
			name: "topic given",
			survey: domain.SurveyRecord{
				"book_first_question":  "fantasy adventure",
				"book_second_question": "J.K. Rowling",
				"book_third_question":  "ignored",
				"book_fourth_question": "4 stars",
			},
			wantText:   "fantasy adventure",
			wantAuthor: "J.K. Rowling",
		},
		{
			name: "no topic falls back to third answer",
			survey: domain.SurveyRecord{
				"book_first_question":  NeedRecommendations,
				"book_second_question": NeedRecommendations,
				"book_third_question":  "mystery",
				"book_fourth_question": NoPreferences,
			},
			wantText:   "mystery",
			wantRating: 3,
		},
		{
			name: "nothing known",
			survey: domain.SurveyRecord{
				"book_first_question":  NeedRecommendations,
				"book_second_question": NeedRecommendations,
				"book_third_question":  NeedRecommendations,
			},
			wantText: RandomText,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := b.Build(domain.Books, tc.survey)

			if got := get(t, q, "text"); got != tc.wantText {
				t.Errorf("text = %v, want %v", got, tc.wantText)
			}
			author, ok := q.Get("author")
			if tc.wantAuthor == nil && ok {
				t.Errorf("author should be absent, got %v", author)
			}
			if tc.wantAuthor != nil && author != tc.wantAuthor {
				t.Errorf("author = %v, want %v", author, tc.wantAuthor)
			}
			rating, ok := q.Get("rating_preference")
			if tc.wantRating == nil && ok {
				t.Errorf("rating_preference should be absent, got %v", rating)
			}
			if tc.wantRating != nil && rating != tc.wantRating {
				t.Errorf("rating_preference = %v, want %v", rating, tc.wantRating)
			}
		})
	}
}

func TestBuild_BooksStarAnswersNeverSetRating(t *testing.T) {
	b := New()
	for _, answer := range []string{"3 stars", "4 stars", "5 stars"} {
		q := b.Build(domain.Books, domain.SurveyRecord{
			"book_first_question":  "x",
			"book_fourth_question": answer,
		})
		if v, ok := q.Get("rating_preference"); ok {
			t.Errorf("%s: rating_preference = %v, want absent", answer, v)
		}
	}
}

func TestBuild_Movies(t *testing.T) {
	b := New(WithIntSource(lowest))

	q := b.Build(domain.Movies, domain.SurveyRecord{
		"movie_first_question":   "Last 10 years",
		"movie_second_question":  "Short (less than 90 minutes)",
		"movie_third_question":   "Fantasy",
		"movie_fourth_question":  "7",
		"movie_fifth_question":   "Alex Garland",
		"movie_sixth_question":   NeedRecommendations,
		"movie_seventh_question": "Popular movies that many people know about",
	})

	want := map[string]any{
		"year":     2014,
		"runtime":  90,
		"genre":    "Fantasy",
		"rating":   7,
		"director": "Alex Garland",
		"votes":    10001,
	}
	for k, v := range want {
		if got := get(t, q, k); got != v {
			t.Errorf("%s = %v, want %v", k, got, v)
		}
	}
	if _, ok := q.Get("star"); ok {
		t.Error("star should be absent")
	}
}

func TestBuild_MoviesDefaults(t *testing.T) {
	b := New(WithIntSource(lowest))

	q := b.Build(domain.Movies, domain.SurveyRecord{
		"movie_fourth_question": "not a number",
	})

	if got := get(t, q, "year"); got != 1900 {
		t.Errorf("year = %v, want 1900", got)
	}
	if got := get(t, q, "runtime"); got != 150 {
		t.Errorf("runtime = %v, want 150", got)
	}
	if got := get(t, q, "votes"); got != 5001 {
		t.Errorf("votes = %v, want 5001", got)
	}
	rating, ok := q.Get("rating")
	if !ok || rating != nil {
		t.Errorf("rating = %v (present %v), want null for a non-numeric answer", rating, ok)
	}
	body, err := q.Body()
	if err != nil {
		t.Fatalf("body: %v", err)
	}
	if !strings.Contains(string(body), `"rating":null`) {
		t.Errorf("body %s should carry rating null", body)
	}
}

func TestBuild_Travel(t *testing.T) {
	b := New()

	q := b.Build(domain.Travel, domain.SurveyRecord{
		"tour_first_question":  NeedRecommendations,
		"tour_second_question": "beach",
		"tour_third_question":  "culture",
		"tour_fourth_question": "Semarang",
		"tour_fifth_question":  "4",
		"tour_sixth_question":  "many",
	})

	if got := get(t, q, "text"); got != "random beach culture" {
		t.Errorf("text = %q", got)
	}
	if got := get(t, q, "city"); got != "Semarang" {
		t.Errorf("city = %v", got)
	}
	if got := get(t, q, "rating_preference"); got != 4.0 {
		t.Errorf("rating_preference = %v, want 4", got)
	}
	if got := get(t, q, "review_preference"); got != "many" {
		t.Errorf("review_preference = %v, want many", got)
	}
}

func TestBuild_Stress(t *testing.T) {
	b := New(WithIntSource(lowest))

	q := b.Build(domain.Stress, domain.SurveyRecord{
		"stress_first_question":   "7",
		"stress_second_question":  "Good",
		"stress_third_question":   "Heavily Active",
		"stress_fourth_question":  "Obesity",
		"stress_fifth_question":   "High",
		"stress_sixth_question":   "Low",
		"stress_seventh_question": "Rarely",
		"stress_eight_question":   "Yes",
	})

	want := map[string]any{
		"sleep_duration":    7,
		"sleep_quality":     8,
		"physical_activity": 71,
		"bmi":               2,
		"blood_pressure":    17,
		"heart_rate":        30,
		"daily_steps":       1000,
		"sleep_disorder":    1,
	}
	for k, v := range want {
		if got := get(t, q, k); got != v {
			t.Errorf("%s = %v, want %v", k, got, v)
		}
	}
}

func TestBuild_StressDefaults(t *testing.T) {
	b := New(WithIntSource(lowest))

	q := b.Build(domain.Stress, domain.SurveyRecord{})

	want := map[string]any{
		"sleep_duration":    0,
		"sleep_quality":     5,
		"physical_activity": 41,
		"bmi":               0,
		"blood_pressure":    8,
		"heart_rate":        60,
		"daily_steps":       4001,
		"sleep_disorder":    0,
	}
	for k, v := range want {
		if got := get(t, q, k); got != v {
			t.Errorf("%s = %v, want %v", k, got, v)
		}
	}
}

func TestUniformInt_StaysInRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		n := uniformInt(5001, 10000)
		if n < 5001 || n > 10000 {
			t.Fatalf("uniformInt out of range: %d", n)
		}
	}
	if got := uniformInt(3, 3); got != 3 {
		t.Errorf("uniformInt(3, 3) = %d", got)
	}
}

func TestLeadingInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"4 stars", 4, true},
		{" 12", 12, true},
		{"-3", -3, true},
		{"stars", 0, false},
		{"", 0, false},
	}
	for _, tc := range tests {
		got, ok := leadingInt(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("leadingInt(%q) = %d, %v; want %d, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
