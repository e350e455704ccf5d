package journal

import "time"

const (
	// NoCategory - самая частая категория пустого списка.
	NoCategory = "none"
	// OtherCategory считается для записей без категории.
	OtherCategory = "Other"

	insightWindowDays = 7
)

// Summary - производные счётчики по списку записей. Не хранится.
type Summary struct {
	RecordsLastWeek    int    `json:"recordsLastWeek"`
	MostCommonCategory string `json:"mostCommonCategory"`
	SleepRecordCount   int    `json:"sleepRecordCount"`
}

// Summarize сворачивает записи в Summary. Сначала считаются все категории, затем
// выбирается категория со строго наибольшим счётчиком в порядке первого появления,
// поэтому на ничьей побеждает категория, встреченная в списке раньше.
func Summarize(records []Record, now time.Time) Summary {
	sum := Summary{MostCommonCategory: NoCategory}
	if len(records) == 0 {
		return sum
	}

	cutoff := now.AddDate(0, 0, -insightWindowDays)
	counts := make(map[string]int)
	var order []string

	for _, r := range records {
		if r.CreatedAt.After(cutoff) {
			sum.RecordsLastWeek++
		}

		c := string(r.Category)
		if c == "" {
			c = OtherCategory
		}
		if counts[c] == 0 {
			order = append(order, c)
		}
		counts[c]++
	}

	maxCount := 0
	for _, c := range order {
		if counts[c] > maxCount {
			maxCount = counts[c]
			sum.MostCommonCategory = c
		}
	}

	sum.SleepRecordCount = counts[string(Sleep)]
	return sum
}
