package journal

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func rec(c Category, at time.Time) Record {
	return Record{Category: c, CreatedAt: at}
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil, time.Now())
	assert.Equal(t, Summary{RecordsLastWeek: 0, MostCommonCategory: "none", SleepRecordCount: 0}, got)

	got = Summarize([]Record{}, time.Now())
	assert.Equal(t, "none", got.MostCommonCategory)
}

func TestSummarize_SleepExample(t *testing.T) {
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	records := []Record{
		rec(Sleep, now),
		rec(Sleep, now.AddDate(0, 0, -6)),
		rec(Sleep, now.AddDate(0, 0, -10)),
	}
	got := Summarize(records, now)
	assert.Equal(t, 2, got.RecordsLastWeek)
	assert.Equal(t, "Sleep", got.MostCommonCategory)
	assert.Equal(t, 3, got.SleepRecordCount)
}

func TestSummarize_WeekBoundaryIsExclusive(t *testing.T) {
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	got := Summarize([]Record{rec(Humor, now.AddDate(0, 0, -7))}, now)
	assert.Equal(t, 0, got.RecordsLastWeek)
}

func TestSummarize_MostCommon(t *testing.T) {
	now := time.Now()
	records := []Record{
		rec(Humor, now), rec(Sleep, now), rec(Sleep, now), rec(Health, now), rec(Sleep, now), rec(Humor, now),
	}
	got := Summarize(records, now)
	assert.Equal(t, "Sleep", got.MostCommonCategory)
	assert.Equal(t, 3, got.SleepRecordCount)
	assert.Equal(t, 6, got.RecordsLastWeek)
}

func TestSummarize_TieKeepsFirstSeen(t *testing.T) {
	now := time.Now()
	got := Summarize([]Record{rec(Humor, now), rec(Sleep, now), rec(Humor, now), rec(Sleep, now)}, now)
	assert.Equal(t, "Humor", got.MostCommonCategory)

	// Sleep первым набирает 2, но Humor встречается раньше
	got = Summarize([]Record{rec(Humor, now), rec(Sleep, now), rec(Sleep, now), rec(Humor, now)}, now)
	assert.Equal(t, "Humor", got.MostCommonCategory)

	got = Summarize([]Record{rec(Sleep, now), rec(Humor, now), rec(Humor, now), rec(Sleep, now)}, now)
	assert.Equal(t, "Sleep", got.MostCommonCategory)
}

func TestSummarize_MissingCategoryCountsAsOther(t *testing.T) {
	now := time.Now()
	got := Summarize([]Record{rec("", now), rec("", now), rec(Sleep, now)}, now)
	assert.Equal(t, OtherCategory, got.MostCommonCategory)
	assert.Equal(t, 1, got.SleepRecordCount)
}

func TestSummarize_CountsArePermutationInvariant(t *testing.T) {
	now := time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)
	records := []Record{
		rec(Sleep, now), rec(Sleep, now.AddDate(0, 0, -2)), rec(Sleep, now.AddDate(0, 0, -20)),
		rec(Humor, now.AddDate(0, 0, -1)), rec(Cycle, now.AddDate(0, 0, -40)), rec(Health, now),
	}
	base := Summarize(records, now)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := append([]Record(nil), records...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got := Summarize(shuffled, now)
		assert.Equal(t, base.RecordsLastWeek, got.RecordsLastWeek)
		assert.Equal(t, base.SleepRecordCount, got.SleepRecordCount)
		// Sleep строго впереди, поэтому ничьей нет
		assert.Equal(t, "Sleep", got.MostCommonCategory)
	}
}
