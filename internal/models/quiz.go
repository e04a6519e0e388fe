package models

import "time"

// QuizAnswer is a single question/answer pair from the skin-type quiz.
type QuizAnswer struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// QuizSubmission is the JSON body of POST /quiz/submit.
type QuizSubmission struct {
	Answers []QuizAnswer `json:"answers" validate:"required,min=1,dive"`
}

// QuizResult is the persisted outcome of a quiz evaluation.
type QuizResult struct {
	ID              string    `json:"id"`
	SkinType        string    `json:"skin_type"`
	Characteristics string    `json:"characteristics"`
	Recommendations string    `json:"recommendations"`
	CreatedAt       time.Time `json:"created_at"`
}
