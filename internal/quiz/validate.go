package quiz

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	// custom validation tags
	notBlankTag = "notblank"
	optionsTag  = "options_required"
)

func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// 错误信息使用 JSON 字段名
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	validate.RegisterStructValidation(questionStructValidation, Question{})

	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range []string{notBlankTag, optionsTag} {
		_ = validate.RegisterTranslation(tag, translator, registerFn, translateCustomErrs)
	}
}

func translateCustomErrs(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag:
		return fe.Field() + " cannot be blank"
	case optionsTag:
		return "options are required for this question type"
	}
	return ""
}

func notBlankValidation(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// questionStructValidation requires at least two options on choice questions.
func questionStructValidation(sl validator.StructLevel) {
	q, ok := sl.Current().Interface().(Question)
	if !ok {
		return
	}
	if q.Type == TypeMCQ && len(q.Options) < 2 {
		sl.ReportError(q.Options, "options", "Options", optionsTag, "")
	}
}

// FieldError is a validation failure on one field of one question.
type FieldError struct {
	Index   int
	Field   string
	Message string
}

// ValidationError 汇总全部字段错误
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("question %d: %s: %s", f.Index, f.Field, f.Message))
	}
	return strings.Join(parts, "; ")
}

// Validate 校验题目列表
func Validate(questions []Question) error {
	var fields []FieldError
	for i := range questions {
		err := validate.Struct(questions[i])
		if err == nil {
			continue
		}
		vErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		for _, vErr := range vErrs {
			fields = append(fields, FieldError{
				Index:   i,
				Field:   strings.TrimPrefix(vErr.Namespace(), "Question."),
				Message: vErr.Translate(translator),
			})
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
