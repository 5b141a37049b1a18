package models

import (
	"encoding/json"
	"errors"
	"strings"
)

// Lesson content is a variant payload shaped by the lesson type. A payload
// that does not match its declared type must degrade to ErrMalformedContent,
// never crash a request.
const (
	LessonTypeText = "text"
	LessonTypeCode = "code"
	LessonTypeQuiz = "quiz"
)

var ErrMalformedContent = errors.New("content not properly formatted")

type TextContent struct {
	Title string `json:"title"`
	Body  string `json:"body"` // HTML
}

type CodeExercise struct {
	Instructions string `json:"instructions"`
	Starter      string `json:"starter"`
	Solution     string `json:"solution"`
}

type CodeContent struct {
	Explanation string        `json:"explanation"`
	Code        string        `json:"code"`
	Language    string        `json:"language"`
	Exercise    *CodeExercise `json:"exercise,omitempty"`
}

type QuizContent struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

// IsCorrect reports whether the selected option index answers the quiz.
func (q QuizContent) IsCorrect(selected int) bool {
	return selected == q.CorrectAnswer
}

// DecodeContent parses the lesson's JSON payload according to its type.
// Returns one of TextContent, CodeContent or QuizContent, or
// ErrMalformedContent when the payload and type disagree.
func (l *Lesson) DecodeContent() (interface{}, error) {
	if len(l.Content) == 0 {
		return nil, ErrMalformedContent
	}

	switch l.Type {
	case LessonTypeText:
		var c TextContent
		if err := json.Unmarshal(l.Content, &c); err != nil {
			return nil, ErrMalformedContent
		}
		if strings.TrimSpace(c.Body) == "" {
			return nil, ErrMalformedContent
		}
		return c, nil

	case LessonTypeCode:
		var c CodeContent
		if err := json.Unmarshal(l.Content, &c); err != nil {
			return nil, ErrMalformedContent
		}
		if strings.TrimSpace(c.Code) == "" {
			return nil, ErrMalformedContent
		}
		return c, nil

	case LessonTypeQuiz:
		var c QuizContent
		if err := json.Unmarshal(l.Content, &c); err != nil {
			return nil, ErrMalformedContent
		}
		if strings.TrimSpace(c.Question) == "" || len(c.Options) == 0 {
			return nil, ErrMalformedContent
		}
		if c.CorrectAnswer < 0 || c.CorrectAnswer >= len(c.Options) {
			return nil, ErrMalformedContent
		}
		return c, nil

	default:
		return nil, ErrMalformedContent
	}
}

// QuizContent returns the decoded quiz payload or ErrMalformedContent when
// the lesson is not a well-formed quiz.
func (l *Lesson) QuizContent() (QuizContent, error) {
	if l.Type != LessonTypeQuiz {
		return QuizContent{}, ErrMalformedContent
	}
	decoded, err := l.DecodeContent()
	if err != nil {
		return QuizContent{}, err
	}
	return decoded.(QuizContent), nil
}
