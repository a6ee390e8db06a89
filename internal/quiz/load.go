package quiz

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Load 读取题库 JSON
//
// path 为 gjson 路径，用于选取子树（如 "grade1.questions" 或
// "questions.#(topic%\"Addition*\")#"）；为空时使用整个文档。
// 单个对象按一道题处理。结果经过 Validate 校验。
func Load(r io.Reader, path string) ([]Question, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read question bank")
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.New("question bank is not valid JSON")
	}

	result := gjson.ParseBytes(data)
	if path != "" {
		result = result.Get(path)
		if !result.Exists() {
			return nil, errors.Errorf("path %q not found in question bank", path)
		}
	}

	raw := result.Raw
	if result.IsObject() {
		raw = "[" + raw + "]"
	} else if !result.IsArray() {
		return nil, errors.Errorf("expected question array, got %s", result.Type)
	}

	var questions []Question
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		return nil, errors.Wrap(err, "decode questions")
	}
	if err := Validate(questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// LoadFile 读取题库文件
func LoadFile(filename, path string) ([]Question, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", filename)
	}
	defer f.Close()

	questions, err := Load(f, path)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", filename)
	}
	return questions, nil
}
