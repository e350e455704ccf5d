package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withFreeTextCategory временно регистрирует категорию без вариантов.
func withFreeTextCategory(t *testing.T, c Category) {
	t.Helper()
	byCategory[c] = CategorySchema{Category: c, Label: string(c)}
	t.Cleanup(func() { delete(byCategory, c) })
}

func TestCategories_FixedOrder(t *testing.T) {
	assert.Equal(t, []Category{Humor, Sleep, Health, Vitality, Social, Leisure, ScreenTime, Cycle}, Categories())
}

func TestOptionsFor(t *testing.T) {
	opts := OptionsFor(Sleep)
	require.Len(t, opts, 3)
	assert.Equal(t, "Under6h", opts[0].ID)

	// копия: изменения не протекают в реестр
	opts[0].ID = "mutated"
	assert.Equal(t, "Under6h", OptionsFor(Sleep)[0].ID)

	assert.Empty(t, OptionsFor("Unknown"))
}

func TestValidate_MissingCategoryValue(t *testing.T) {
	for _, c := range Categories() {
		t.Run(string(c), func(t *testing.T) {
			d := NewDraft(c)
			_, err := Validate(d)
			assert.NoError(t, err)

			d.CategoryValue = ""
			_, err = Validate(d)
			assert.ErrorIs(t, err, ErrMissingCategoryValue)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestValidate_FreeTextCategory(t *testing.T) {
	withFreeTextCategory(t, "Note")

	_, err := Validate(Draft{Category: "Note", Content: ""})
	assert.ErrorIs(t, err, ErrMissingContent)

	_, err = Validate(Draft{Category: "Note", Content: "  \t\n "})
	assert.ErrorIs(t, err, ErrMissingContent)

	rec, err := Validate(Draft{Category: "Note", Content: "  wrote a letter  ", CategoryValue: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "wrote a letter", rec.Content)
	assert.Empty(t, rec.CategoryValue)
	assert.Empty(t, OptionsFor("Note"))
}

func TestValidate_ContentOptionalWithOptions(t *testing.T) {
	rec, err := Validate(Draft{Category: Humor, CategoryValue: "Happy"})
	require.NoError(t, err)
	assert.Equal(t, "", rec.Content)
	assert.Equal(t, "Happy", rec.CategoryValue)
}

func TestValidate_HealthDefaultsPain(t *testing.T) {
	rec, err := Validate(Draft{Category: Health, CategoryValue: "Exercised"})
	require.NoError(t, err)
	assert.Equal(t, PainNone, rec.PainValue)
	assert.Empty(t, rec.ScreenTimeValue)
	assert.Empty(t, rec.SeverityValue)
}

func TestValidate_MissingSubAttribute(t *testing.T) {
	_, err := Validate(Draft{Category: ScreenTime, CategoryValue: "TV"})
	assert.ErrorIs(t, err, ErrMissingSubAttribute)

	_, err = Validate(Draft{Category: Cycle, CategoryValue: "PMS"})
	assert.ErrorIs(t, err, ErrMissingSubAttribute)
}

func TestValidate_InvalidValues(t *testing.T) {
	_, err := Validate(Draft{Category: "Mood"})
	assert.ErrorIs(t, err, ErrUnknownCategory)

	_, err = Validate(Draft{Category: Sleep, CategoryValue: "Happy"})
	assert.ErrorIs(t, err, ErrInvalidCategoryValue)

	_, err = Validate(Draft{Category: Cycle, CategoryValue: "PMS", SeverityValue: "Extreme"})
	assert.ErrorIs(t, err, ErrInvalidSubAttribute)
}

func TestValidate_NormalizesForeignSubAttributes(t *testing.T) {
	rec, err := Validate(Draft{
		Category:        ScreenTime,
		CategoryValue:   "VideoGame",
		PainValue:       "Headache",
		ScreenTimeValue: "Over5h",
		SeverityValue:   "Mild",
	})
	require.NoError(t, err)
	assert.Equal(t, "Over5h", rec.ScreenTimeValue)
	assert.Empty(t, rec.PainValue)
	assert.Empty(t, rec.SeverityValue)
}

func TestValidate_ExactlyOneSubAttributeForOwners(t *testing.T) {
	owners := map[Category]func(Record) string{
		Health:     func(r Record) string { return r.PainValue },
		ScreenTime: func(r Record) string { return r.ScreenTimeValue },
		Cycle:      func(r Record) string { return r.SeverityValue },
	}
	for _, c := range Categories() {
		rec, err := Validate(NewDraft(c))
		require.NoError(t, err, c)

		set := 0
		for _, v := range []string{rec.PainValue, rec.ScreenTimeValue, rec.SeverityValue} {
			if v != "" {
				set++
			}
		}
		if get, ok := owners[c]; ok {
			assert.Equal(t, 1, set, c)
			assert.NotEmpty(t, get(rec), c)
		} else {
			assert.Equal(t, 0, set, c)
		}
	}
}

func TestNewDraft_Defaults(t *testing.T) {
	d := NewDraft(Cycle)
	assert.Equal(t, "PMS", d.CategoryValue)
	assert.Equal(t, "Mild", d.SeverityValue)

	d = NewDraft(Humor)
	assert.Equal(t, "Good", d.CategoryValue)
	assert.Empty(t, d.PainValue)

	d = NewDraft("Unknown")
	assert.Empty(t, d.CategoryValue)
}

func TestSchemaFor_ReturnsCopy(t *testing.T) {
	s, ok := SchemaFor(Health)
	require.True(t, ok)
	require.NotNil(t, s.SubAttribute)
	s.SubAttribute.Options[0].ID = "x"

	again, _ := SchemaFor(Health)
	assert.Equal(t, PainNone, again.SubAttribute.Options[0].ID)

	_, ok = SchemaFor("nope")
	assert.False(t, ok)
	assert.Len(t, Schemas(), len(Categories()))
}
