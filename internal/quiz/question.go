// Package quiz holds the question records whose text fields are rendered
// as math-aware markup.
package quiz

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

// Type 题型
type Type string

const (
	TypeMCQ        Type = "mcq"
	TypeUserInput  Type = "userInput"
	TypeTrueFalse  Type = "trueFalse"
	TypeTableInput Type = "tableInput"
	TypeFactorTree Type = "factorTree"
)

// Scalar is a JSON string, number or boolean kept as its textual form.
// Question banks carry ids and answers in all three shapes.
type Scalar string

// UnmarshalJSON accepts strings, numbers, booleans and null.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*s = ""
	case data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*s = Scalar(data)
	default:
		if _, err := strconv.ParseFloat(string(data), 64); err != nil {
			return errors.Errorf("quiz: expected string, number or boolean, got %s", data)
		}
		*s = Scalar(data)
	}
	return nil
}

// Option 选择题选项
type Option struct {
	Value Scalar `json:"value" validate:"notblank"`
	Label string `json:"label" validate:"notblank"`
}

// Question 题目记录
type Question struct {
	ID       Scalar   `json:"id,omitempty"`
	Type     Type     `json:"type" validate:"required,oneof=mcq userInput trueFalse tableInput factorTree"`
	Topic    string   `json:"topic,omitempty"`
	Grade    int      `json:"grade,omitempty" validate:"min=0,max=12"`
	Question string   `json:"question" validate:"notblank"`
	Options  []Option `json:"options,omitempty" validate:"dive"`
	Answer   Scalar   `json:"answer"`
	Image    string   `json:"image,omitempty" validate:"omitempty,url"`
}

// HasOptions reports whether the question is answered by picking an option.
func (q *Question) HasOptions() bool {
	return q.Type == TypeMCQ || q.Type == TypeTrueFalse
}
