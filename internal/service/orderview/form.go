package orderview

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"joyvision-web/internal/storage"
)

var validate = validator.New()

var (
	leadingInt   = regexp.MustCompile(`^[+-]?\d+`)
	leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

var fieldLabels = map[string]string{
	"SystemType": "тип системы",
	"Width":      "ширина",
	"Height":     "высота",
	"Panels":     "количество створок",
}

// SystemForm - сырые значения формы добавления системы.
type SystemForm struct {
	SystemType string
	Width      string
	Height     string
	Panels     string
	Opening    string
}

func SystemFormFromValues(values url.Values) SystemForm {
	return SystemForm{
		SystemType: values.Get("system_type"),
		Width:      values.Get("width"),
		Height:     values.Get("height"),
		Panels:     values.Get("panels"),
		Opening:    values.Get("opening"),
	}
}

// FormError описывает поле формы, которое не удалось привести или проверить.
type FormError struct {
	Field  string
	Reason string
}

func (e *FormError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Request приводит ширину и высоту к целым (берётся числовой префикс),
// створки к дробному числу, остальное оставляет текстом.
func (f SystemForm) Request() (storage.SystemRequest, error) {
	width, err := parseLeadingInt(f.Width)
	if err != nil {
		return storage.SystemRequest{}, &FormError{Field: fieldLabels["Width"], Reason: "ожидается целое число"}
	}

	height, err := parseLeadingInt(f.Height)
	if err != nil {
		return storage.SystemRequest{}, &FormError{Field: fieldLabels["Height"], Reason: "ожидается целое число"}
	}

	panels, err := parseLeadingFloat(f.Panels)
	if err != nil {
		return storage.SystemRequest{}, &FormError{Field: fieldLabels["Panels"], Reason: "ожидается число"}
	}

	req := storage.SystemRequest{
		SystemType: strings.TrimSpace(f.SystemType),
		Width:      width,
		Height:     height,
		Panels:     panels,
		Opening:    strings.TrimSpace(f.Opening),
	}

	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return storage.SystemRequest{}, &FormError{Field: fieldLabels[verrs[0].Field()], Reason: reason(verrs[0].Tag())}
		}
		return storage.SystemRequest{}, fmt.Errorf("validate system form: %w", err)
	}

	return req, nil
}

func reason(tag string) string {
	switch tag {
	case "required":
		return "обязательное поле"
	case "gt":
		return "должно быть больше нуля"
	default:
		return "некорректное значение"
	}
}

func parseLeadingInt(s string) (int, error) {
	m := leadingInt.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(m)
}

// parseLeadingFloat принимает и запятую как разделитель дробной части.
func parseLeadingFloat(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")

	m := leadingFloat.FindString(s)
	if m == "" {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(m, 64)
}
