// Package entities contains domain entities used across the application.
package entities

// FileItem is one entry of the corpus index file, pointing at a category file.
type FileItem struct {
	Title string `json:"title"` // display title of the category
	File  string `json:"file"`  // file name relative to the data directory
}

// Answer is a single answer option of a question.
type Answer struct {
	Answer  string `json:"answer"`  // answer text
	Correct bool   `json:"correct"` // whether this answer is the right one
}

// Question is a question with its answer options.
// A parsed question always carries at least one answer.
type Question struct {
	Question string   `json:"question"` // question text
	Answers  []Answer `json:"answers"`  // answer options in source order
}

// QuestionCategory is a titled group of questions, either parsed from a
// category file or reassembled from stored rows.
type QuestionCategory struct {
	Title     string     `json:"title"`          // category title
	File      string     `json:"file,omitempty"` // source file name, set only for corpus categories
	Questions []Question `json:"questions"`      // questions in source order
}
