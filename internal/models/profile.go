// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

// Contributions are a user's content counts shown on the profile page.
type Contributions struct {
	QuestionsAsked int `db:"questions_asked" json:"questionsAsked"`
	AnswersGiven   int `db:"answers_given" json:"answersGiven"`
	CommentsMade   int `db:"comments_made" json:"commentsMade"`
}

// Profile is a user joined with their login email and contribution counts.
type Profile struct { //nolint:govet // fieldalignment: readability over optimization
	User
	Email         string        `db:"email" json:"email"`
	Contributions Contributions `json:"contributions"`
}
