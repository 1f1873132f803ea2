// Package exam holds exam definitions and the in-memory session store that
// owns an attempt's state: current question, answers, remaining time and
// submission.
package exam

import "time"

// QuestionKind selects how a question is answered.
type QuestionKind string

const (
	KindChoice QuestionKind = "choice"
	KindText   QuestionKind = "text"
)

// Question is one exam item. Content is opaque to examdesk.
type Question struct {
	ID      string       `yaml:"id" json:"id"`
	Prompt  string       `yaml:"prompt" json:"prompt"`
	Kind    QuestionKind `yaml:"kind" json:"kind"`
	Choices []string     `yaml:"choices,omitempty" json:"choices,omitempty"`
}

// HasChoice reports whether response is one of the question's choices.
func (q Question) HasChoice(response string) bool {
	for _, c := range q.Choices {
		if c == response {
			return true
		}
	}
	return false
}

// Exam is a loaded exam definition.
type Exam struct {
	ID        string     `yaml:"id" json:"id"`
	Title     string     `yaml:"title" json:"title"`
	Format    string     `yaml:"format" json:"format"`
	Duration  string     `yaml:"duration" json:"duration"`
	Questions []Question `yaml:"questions" json:"questions"`

	// TimeLimit is Duration parsed by the loader.
	TimeLimit time.Duration `yaml:"-" json:"-"`
}

// DurationSeconds returns the time limit in whole seconds.
func (e *Exam) DurationSeconds() int {
	return int(e.TimeLimit / time.Second)
}

// Total returns the number of questions.
func (e *Exam) Total() int {
	return len(e.Questions)
}
