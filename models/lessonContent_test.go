package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestDecodeTextContent(t *testing.T) {
	lesson := Lesson{
		Type:    LessonTypeText,
		Content: datatypes.JSON(`{"title":"Intro","body":"<p>Welcome</p>"}`),
	}

	decoded, err := lesson.DecodeContent()
	require.NoError(t, err)

	text, ok := decoded.(TextContent)
	require.True(t, ok)
	assert.Equal(t, "Intro", text.Title)
	assert.Equal(t, "<p>Welcome</p>", text.Body)
}

func TestDecodeCodeContent(t *testing.T) {
	lesson := Lesson{
		Type: LessonTypeCode,
		Content: datatypes.JSON(`{
			"explanation": "Print a greeting",
			"code": "print(\"hi\")",
			"language": "python",
			"exercise": {"instructions": "Change the greeting", "starter": "print()", "solution": "print(\"hello\")"}
		}`),
	}

	decoded, err := lesson.DecodeContent()
	require.NoError(t, err)

	code, ok := decoded.(CodeContent)
	require.True(t, ok)
	assert.Equal(t, "python", code.Language)
	require.NotNil(t, code.Exercise)
	assert.Equal(t, "Change the greeting", code.Exercise.Instructions)
}

func TestDecodeCodeContentWithoutExercise(t *testing.T) {
	lesson := Lesson{
		Type:    LessonTypeCode,
		Content: datatypes.JSON(`{"explanation":"x","code":"1+1","language":"python"}`),
	}

	decoded, err := lesson.DecodeContent()
	require.NoError(t, err)
	assert.Nil(t, decoded.(CodeContent).Exercise)
}

func TestDecodeQuizContent(t *testing.T) {
	lesson := Lesson{
		Type:    LessonTypeQuiz,
		Content: datatypes.JSON(`{"question":"2+2?","options":["3","4","5"],"correct_answer":1}`),
	}

	decoded, err := lesson.DecodeContent()
	require.NoError(t, err)

	quiz, ok := decoded.(QuizContent)
	require.True(t, ok)
	assert.True(t, quiz.IsCorrect(1))
	assert.False(t, quiz.IsCorrect(0))
	assert.False(t, quiz.IsCorrect(2))
}

func TestDecodeMalformedContent(t *testing.T) {
	cases := []struct {
		name   string
		lesson Lesson
	}{
		{"empty payload", Lesson{Type: LessonTypeText, Content: datatypes.JSON(``)}},
		{"invalid json", Lesson{Type: LessonTypeText, Content: datatypes.JSON(`{not json`)}},
		{"text missing body", Lesson{Type: LessonTypeText, Content: datatypes.JSON(`{"title":"only"}`)}},
		{"code missing code", Lesson{Type: LessonTypeCode, Content: datatypes.JSON(`{"explanation":"x","language":"go"}`)}},
		{"quiz missing options", Lesson{Type: LessonTypeQuiz, Content: datatypes.JSON(`{"question":"?","options":[],"correct_answer":0}`)}},
		{"quiz answer out of range", Lesson{Type: LessonTypeQuiz, Content: datatypes.JSON(`{"question":"?","options":["a","b"],"correct_answer":2}`)}},
		{"quiz negative answer", Lesson{Type: LessonTypeQuiz, Content: datatypes.JSON(`{"question":"?","options":["a","b"],"correct_answer":-1}`)}},
		{"unknown type", Lesson{Type: "video", Content: datatypes.JSON(`{"url":"x"}`)}},
		{"type content mismatch", Lesson{Type: LessonTypeQuiz, Content: datatypes.JSON(`{"title":"t","body":"b"}`)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.lesson.DecodeContent()
			assert.ErrorIs(t, err, ErrMalformedContent)
		})
	}
}

func TestQuizContentHelper(t *testing.T) {
	text := Lesson{Type: LessonTypeText, Content: datatypes.JSON(`{"title":"t","body":"b"}`)}
	_, err := text.QuizContent()
	assert.ErrorIs(t, err, ErrMalformedContent)

	quiz := Lesson{Type: LessonTypeQuiz, Content: datatypes.JSON(`{"question":"?","options":["a","b"],"correct_answer":0}`)}
	decoded, err := quiz.QuizContent()
	require.NoError(t, err)
	assert.Equal(t, 0, decoded.CorrectAnswer)
}

func TestNormalizeIcon(t *testing.T) {
	assert.Equal(t, IconStar, NormalizeIcon(IconStar))
	assert.Equal(t, IconBook, NormalizeIcon(IconBook))
	assert.Equal(t, DefaultIcon, NormalizeIcon("medal"))
	assert.Equal(t, DefaultIcon, NormalizeIcon(""))
	assert.False(t, IsKnownIcon("medal"))
	assert.True(t, IsKnownIcon(IconTarget))
}
