package resource

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Form is the raw, free-text input of the resource form. Technologies and
// Languages are comma separated lists.
type Form struct {
	Title         string
	Description   string
	URL           string
	Type          string
	Category      string
	Technologies  string
	Languages     string
	Author        string
	UsefulCount   int
	FavoriteCount int
}

// Draft is a normalized Form: every field a Resource has except id and dateAdded.
type Draft struct {
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	URL           string   `json:"url" validate:"required,url"`
	Type          Type     `json:"type" validate:"required,resource_type"`
	Category      Category `json:"category" validate:"required,resource_category"`
	Technologies  []string `json:"technologies"`
	Languages     []string `json:"languages"`
	Author        string   `json:"author"`
	UsefulCount   int      `json:"usefulCount" validate:"min=0"`
	FavoriteCount int      `json:"favoriteCount" validate:"min=0"`
}

// FieldError describes one invalid form field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError is returned when a form cannot be turned into a Resource.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// SplitList splits comma separated text, trims every piece and drops empty
// pieces. Order and duplicates are kept.
func SplitList(s string) []string {
	out := []string{}
	for _, piece := range strings.Split(s, ",") {
		if p := strings.TrimSpace(piece); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Normalize trims the text fields of f and splits its list fields.
func Normalize(f Form) Draft {
	return Draft{
		Title:         strings.TrimSpace(f.Title),
		Description:   strings.TrimSpace(f.Description),
		URL:           strings.TrimSpace(f.URL),
		Type:          Type(strings.TrimSpace(f.Type)),
		Category:      Category(strings.TrimSpace(f.Category)),
		Technologies:  SplitList(f.Technologies),
		Languages:     SplitList(f.Languages),
		Author:        strings.TrimSpace(f.Author),
		UsefulCount:   f.UsefulCount,
		FavoriteCount: f.FavoriteCount,
	}
}

// Editor validates forms and turns them into resources.
type Editor struct {
	validate *validator.Validate
	now      func() time.Time
	newID    func() string
}

// NewEditor creates an Editor stamping records with the wall clock and
// random UUIDs.
func NewEditor() *Editor {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("resource_type", func(fl validator.FieldLevel) bool {
		return Type(fl.Field().String()).Valid()
	})
	v.RegisterValidation("resource_category", func(fl validator.FieldLevel) bool {
		return Category(fl.Field().String()).Valid()
	})

	return &Editor{
		validate: v,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// Validate reports every invalid field of f. A nil result means f is valid.
func (e *Editor) Validate(f Form) []FieldError {
	return e.check(Normalize(f))
}

func (e *Editor) check(d Draft) []FieldError {
	err := e.validate.Struct(d)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "form", Message: err.Error()}}
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return fields
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "url":
		return fmt.Sprintf("%s must be an absolute URL", fe.Field())
	case "resource_type":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), joinValues(ValidTypes))
	case "resource_category":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), joinValues(ValidCategories))
	case "min":
		return fmt.Sprintf("%s must be zero or greater", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func joinValues[T ~string](vals []T) string {
	s := make([]string, len(vals))
	for i, v := range vals {
		s[i] = string(v)
	}
	return strings.Join(s, ", ")
}

// Create builds a new Resource from f with a fresh id and the current time.
func (e *Editor) Create(f Form) (Resource, error) {
	d := Normalize(f)
	if fields := e.check(d); fields != nil {
		return Resource{}, &ValidationError{Fields: fields}
	}
	return fromDraft(e.newID(), e.now(), d), nil
}

// Revise replaces every field of existing with the values of f, keeping
// existing's id and dateAdded.
func (e *Editor) Revise(existing Resource, f Form) (Resource, error) {
	d := Normalize(f)
	if fields := e.check(d); fields != nil {
		return Resource{}, &ValidationError{Fields: fields}
	}
	return fromDraft(existing.ID, existing.DateAdded, d), nil
}

func fromDraft(id string, added time.Time, d Draft) Resource {
	return Resource{
		ID:            id,
		Title:         d.Title,
		Description:   d.Description,
		URL:           d.URL,
		Type:          d.Type,
		Category:      d.Category,
		Technologies:  d.Technologies,
		Languages:     d.Languages,
		UsefulCount:   d.UsefulCount,
		FavoriteCount: d.FavoriteCount,
		DateAdded:     added,
		Author:        d.Author,
	}
}
