// Package journal содержит доменную модель дневника: схему категорий, валидацию записей,
// расчёт инсайтов и фильтр истории. Пакет не делает I/O.
package journal

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Category - верхнеуровневое измерение дневника.
type Category string

const (
	Humor      Category = "Humor"
	Sleep      Category = "Sleep"
	Health     Category = "Health"
	Vitality   Category = "Vitality"
	Social     Category = "Social"
	Leisure    Category = "Leisure"
	ScreenTime Category = "ScreenTime"
	Cycle      Category = "Cycle"
)

// Имена полей под-атрибутов в хранимых документах.
const (
	FieldPain       = "painValue"
	FieldScreenTime = "screenTimeValue"
	FieldSeverity   = "severityValue"
)

// PainNone - значение боли по умолчанию для записей Health.
const PainNone = "NoPain"

// Option - один вариант выбора (id хранится, label показывается).
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// SubAttribute - второй селектор, принадлежащий категории.
type SubAttribute struct {
	Field   string   `json:"field"`
	Options []Option `json:"options"`
	// Default подставляется, если поле в черновике пустое. Пустой Default делает поле обязательным.
	Default string `json:"default,omitempty"`
}

// CategorySchema - запись реестра для одной категории.
type CategorySchema struct {
	Category     Category      `json:"category"`
	Label        string        `json:"label"`
	Options      []Option      `json:"options"`
	SubAttribute *SubAttribute `json:"subAttribute,omitempty"`
}

// Record - одна запись дневника.
type Record struct {
	ID              string    `json:"id"`
	UserID          int64     `json:"userId"`
	Category        Category  `json:"category"`
	CategoryValue   string    `json:"categoryValue,omitempty"`
	Content         string    `json:"content"`
	PainValue       string    `json:"painValue,omitempty"`
	ScreenTimeValue string    `json:"screenTimeValue,omitempty"`
	SeverityValue   string    `json:"severityValue,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Draft - кандидат в запись, собранный формой ввода.
type Draft struct {
	Category        Category `json:"category"`
	CategoryValue   string   `json:"categoryValue,omitempty"`
	Content         string   `json:"content"`
	PainValue       string   `json:"painValue,omitempty"`
	ScreenTimeValue string   `json:"screenTimeValue,omitempty"`
	SeverityValue   string   `json:"severityValue,omitempty"`
}

// Ошибки валидации. Все оборачивают ErrValidation.
var (
	ErrValidation           = errors.New("validation failed")
	ErrUnknownCategory      = fmt.Errorf("%w: unknown category", ErrValidation)
	ErrMissingContent       = fmt.Errorf("%w: content is required", ErrValidation)
	ErrMissingCategoryValue = fmt.Errorf("%w: category value is required", ErrValidation)
	ErrInvalidCategoryValue = fmt.Errorf("%w: category value is not allowed", ErrValidation)
	ErrMissingSubAttribute  = fmt.Errorf("%w: sub-attribute is required", ErrValidation)
	ErrInvalidSubAttribute  = fmt.Errorf("%w: sub-attribute value is not allowed", ErrValidation)
)

var painOptions = []Option{
	{ID: PainNone, Label: "No pain"},
	{ID: "Headache", Label: "Headache"},
	{ID: "BackPain", Label: "Back pain"},
	{ID: "JointPain", Label: "Joint pain"},
	{ID: "StomachPain", Label: "Stomach pain"},
}

var screenTimeOptions = []Option{
	{ID: "Under1h", Label: "<1h"},
	{ID: "OneToThreeH", Label: "1-3h"},
	{ID: "ThreeToFiveH", Label: "3-5h"},
	{ID: "Over5h", Label: ">5h"},
}

var severityOptions = []Option{
	{ID: "Mild", Label: "Mild"},
	{ID: "Moderate", Label: "Moderate"},
	{ID: "Intense", Label: "Intense"},
}

// registry не изменяется, аксессоры отдают копии.
var registry = []CategorySchema{
	{
		Category: Humor,
		Label:    "Feelings",
		Options: []Option{
			{ID: "Good", Label: "Good"},
			{ID: "Happy", Label: "Happy"},
			{ID: "Confident", Label: "Confident"},
			{ID: "Elated", Label: "Elated"},
			{ID: "Sensitive", Label: "Sensitive"},
			{ID: "Sad", Label: "Sad"},
			{ID: "Irritable", Label: "Irritable"},
			{ID: "Angry", Label: "Angry"},
		},
	},
	{
		Category: Sleep,
		Label:    "Sleep",
		Options: []Option{
			{ID: "Under6h", Label: "Less than 6h"},
			{ID: "SixToSeven", Label: "6 to 7 hours"},
			{ID: "EightPlus", Label: "8h or more"},
		},
	},
	{
		Category: Health,
		Label:    "Health",
		Options: []Option{
			{ID: "Exercised", Label: "Yes, I exercised"},
			{ID: "NoExercise", Label: "No exercise"},
		},
		SubAttribute: &SubAttribute{Field: FieldPain, Options: painOptions, Default: PainNone},
	},
	{
		Category: Vitality,
		Label:    "Vitality",
		Options: []Option{
			{ID: "HighEnergy", Label: "Lots of energy"},
			{ID: "Energy", Label: "Energy"},
			{ID: "Tired", Label: "Tired"},
			{ID: "Exhausted", Label: "Exhausted"},
		},
	},
	{
		Category: Social,
		Label:    "Social life",
		Options: []Option{
			{ID: "Introversion", Label: "Introversion"},
			{ID: "Sociable", Label: "Sociable"},
			{ID: "DigitalOnly", Label: "Digital interaction only"},
			{ID: "Isolation", Label: "Isolation"},
		},
	},
	{
		Category: Leisure,
		Label:    "Leisure",
		Options: []Option{
			{ID: "Vacation", Label: "Vacation"},
			{ID: "Trip", Label: "Trip"},
			{ID: "Meetup", Label: "Meetup"},
			{ID: "Hobby", Label: "Hobby"},
		},
	},
	{
		Category: ScreenTime,
		Label:    "Screen time",
		Options: []Option{
			{ID: "PhoneSocial", Label: "Phone/Social media"},
			{ID: "TV", Label: "TV"},
			{ID: "VideoGame", Label: "Video game"},
		},
		SubAttribute: &SubAttribute{Field: FieldScreenTime, Options: screenTimeOptions},
	},
	{
		Category: Cycle,
		Label:    "Menstrual cycle",
		Options: []Option{
			{ID: "PMS", Label: "PMS"},
			{ID: "Menstruation", Label: "Menstruation"},
		},
		SubAttribute: &SubAttribute{Field: FieldSeverity, Options: severityOptions},
	},
}

var byCategory = func() map[Category]CategorySchema {
	m := make(map[Category]CategorySchema, len(registry))
	for _, s := range registry {
		m[s.Category] = s
	}
	return m
}()

// Categories возвращает категории в фиксированном порядке.
func Categories() []Category {
	out := make([]Category, 0, len(registry))
	for _, s := range registry {
		out = append(out, s.Category)
	}
	return out
}

// Schemas возвращает копию всего реестра в порядке категорий.
func Schemas() []CategorySchema {
	out := make([]CategorySchema, 0, len(registry))
	for _, s := range registry {
		out = append(out, copySchema(s))
	}
	return out
}

// SchemaFor возвращает запись реестра для c.
func SchemaFor(c Category) (CategorySchema, bool) {
	s, ok := byCategory[c]
	if !ok {
		return CategorySchema{}, false
	}
	return copySchema(s), true
}

// OptionsFor возвращает варианты категории. Пустой результат означает категорию со
// свободным текстом, для которой обязателен content.
func OptionsFor(c Category) []Option {
	s, ok := byCategory[c]
	if !ok || len(s.Options) == 0 {
		return nil
	}
	return append([]Option(nil), s.Options...)
}

// IsKnown сообщает, есть ли c в реестре.
func IsKnown(c Category) bool {
	_, ok := byCategory[c]
	return ok
}

// NewDraft возвращает черновик с умолчаниями формы для c: первый вариант категории и,
// если у категории есть под-атрибут, его первый вариант.
func NewDraft(c Category) Draft {
	d := Draft{Category: c}
	s, ok := byCategory[c]
	if !ok {
		return d
	}
	if len(s.Options) > 0 {
		d.CategoryValue = s.Options[0].ID
	}
	if s.SubAttribute != nil && len(s.SubAttribute.Options) > 0 {
		setSub(&d, s.SubAttribute.Field, s.SubAttribute.Options[0].ID)
	}
	return d
}

// Validate проверяет черновик и возвращает нормализованную запись: заполнено ровно то
// под-поле, которое принадлежит категории, остальные пустые.
func Validate(d Draft) (Record, error) {
	s, ok := byCategory[d.Category]
	if !ok {
		return Record{}, fmt.Errorf("%w: %q", ErrUnknownCategory, d.Category)
	}

	content := strings.TrimSpace(d.Content)
	if len(s.Options) == 0 {
		if content == "" {
			return Record{}, ErrMissingContent
		}
	} else {
		if d.CategoryValue == "" {
			return Record{}, ErrMissingCategoryValue
		}
		if !hasOption(s.Options, d.CategoryValue) {
			return Record{}, fmt.Errorf("%w: %q for %s", ErrInvalidCategoryValue, d.CategoryValue, d.Category)
		}
	}

	rec := Record{Category: d.Category, Content: content}
	if len(s.Options) > 0 {
		rec.CategoryValue = d.CategoryValue
	}

	if s.SubAttribute != nil {
		v := subValue(d, s.SubAttribute.Field)
		if v == "" {
			if s.SubAttribute.Default == "" {
				return Record{}, fmt.Errorf("%w: %s", ErrMissingSubAttribute, s.SubAttribute.Field)
			}
			v = s.SubAttribute.Default
		}
		if !hasOption(s.SubAttribute.Options, v) {
			return Record{}, fmt.Errorf("%w: %s=%q", ErrInvalidSubAttribute, s.SubAttribute.Field, v)
		}
		switch s.SubAttribute.Field {
		case FieldPain:
			rec.PainValue = v
		case FieldScreenTime:
			rec.ScreenTimeValue = v
		case FieldSeverity:
			rec.SeverityValue = v
		}
	}
	return rec, nil
}

func subValue(d Draft, field string) string {
	switch field {
	case FieldPain:
		return d.PainValue
	case FieldScreenTime:
		return d.ScreenTimeValue
	case FieldSeverity:
		return d.SeverityValue
	}
	return ""
}

func setSub(d *Draft, field, v string) {
	switch field {
	case FieldPain:
		d.PainValue = v
	case FieldScreenTime:
		d.ScreenTimeValue = v
	case FieldSeverity:
		d.SeverityValue = v
	}
}

func hasOption(opts []Option, id string) bool {
	for _, o := range opts {
		if o.ID == id {
			return true
		}
	}
	return false
}

func copySchema(s CategorySchema) CategorySchema {
	out := s
	out.Options = append([]Option(nil), s.Options...)
	if s.SubAttribute != nil {
		sub := *s.SubAttribute
		sub.Options = append([]Option(nil), s.SubAttribute.Options...)
		out.SubAttribute = &sub
	}
	return out
}
