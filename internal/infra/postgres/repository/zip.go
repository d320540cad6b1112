package repository

import "github.com/vefforritun/vef2-2025-v2-synilausn/internal/domain/entities"

// ZipQuestionsAndAnswers nests flat answer rows under their question rows.
//
// All questions are assumed to belong to one category; the title is taken
// from the first row. Questions keep the order of their first appearance and
// answers whose question is unknown are dropped.
func ZipQuestionsAndAnswers(questions []entities.StoredQuestion, answers []entities.StoredAnswer) entities.QuestionCategory {
	category := entities.QuestionCategory{
		Questions: make([]entities.Question, 0, len(questions)),
	}
	if len(questions) > 0 {
		category.Title = questions[0].CategoryName
	}

	positions := make(map[int]int, len(questions))
	for _, q := range questions {
		if _, seen := positions[q.ID]; seen {
			continue
		}
		positions[q.ID] = len(category.Questions)
		category.Questions = append(category.Questions, entities.Question{
			Question: q.Text,
			Answers:  []entities.Answer{},
		})
	}

	for _, a := range answers {
		i, ok := positions[a.QuestionID]
		if !ok {
			continue
		}
		category.Questions[i].Answers = append(category.Questions[i].Answers, entities.Answer{
			Answer:  a.Text,
			Correct: a.Correct,
		})
	}

	return category
}
