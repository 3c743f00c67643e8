package model

const (
	QuestionKindSelect      = "select"
	QuestionKindText        = "text"
	QuestionKindTextArea    = "textarea"
	QuestionKindSlider      = "slider"
	QuestionKindMultiSelect = "multiselect"
)

// Question is one entry of the fixed ten-question profile questionnaire.
// The set is static: answers are keyed by Number in storage and by Key in
// the generation prompt.
type Question struct {
	Number   int
	Key      string
	Text     string
	Kind     string
	Options  []string
	Min      int
	Max      int
	MaxChars int
}

var Questions = []Question{
	{
		Number:  1,
		Key:     "age_range",
		Text:    "What is your age range?",
		Kind:    QuestionKindSelect,
		Options: []string{"18-24", "25-34", "35-44", "45-54", "55+"},
	},
	{
		Number: 2,
		Key:    "occupation",
		Text:   "What is your occupation?",
		Kind:   QuestionKindText,
	},
	{
		Number:  3,
		Key:     "health_priority",
		Text:    "How important is health and wellness to you?",
		Kind:    QuestionKindSelect,
		Options: []string{"Very Important", "Important", "Somewhat Important", "Not Important"},
	},
	{
		Number: 4,
		Key:    "free_time",
		Text:   "How many hours of free time do you have daily?",
		Kind:   QuestionKindSlider,
		Min:    0,
		Max:    8,
	},
	{
		Number:   5,
		Key:      "challenge",
		Text:     "What is your main daily challenge? (max 200 characters)",
		Kind:     QuestionKindTextArea,
		MaxChars: 200,
	},
	{
		Number:  6,
		Key:     "categories",
		Text:    "Which categories interest you most? (Select all that apply)",
		Kind:    QuestionKindMultiSelect,
		Options: GoalCategories,
	},
	{
		Number:  7,
		Key:     "schedule",
		Text:    "Are you more of a morning or evening person?",
		Kind:    QuestionKindSelect,
		Options: []string{"Morning", "Evening", "Both"},
	},
	{
		Number: 8,
		Key:    "stress",
		Text:   "What is your current stress level? (1 = very low, 10 = very high)",
		Kind:   QuestionKindSlider,
		Min:    1,
		Max:    10,
	},
	{
		Number:  9,
		Key:     "difficulty",
		Text:    "What difficulty level do you prefer for your goals?",
		Kind:    QuestionKindSelect,
		Options: []string{"Easy", "Medium", "Challenging"},
	},
	{
		Number:   10,
		Key:      "motivation",
		Text:     "What motivates you most? (max 200 characters)",
		Kind:     QuestionKindTextArea,
		MaxChars: 200,
	},
}

// QuestionByKey returns the question with the given key, or nil.
func QuestionByKey(key string) *Question {
	for i := range Questions {
		if Questions[i].Key == key {
			return &Questions[i]
		}
	}
	return nil
}
