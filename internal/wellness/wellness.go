// Package wellness содержит статичные материалы о заботе о себе, которые показываются рядом с дневником.
package wellness

import "math/rand"

// Tip - короткая практика на день.
type Tip struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Resource - внешний источник поддержки.
type Resource struct {
	Name    string `json:"name"`
	Link    string `json:"link"`
	Contact string `json:"contact"`
}

const maxRerollAttempts = 5

var tips = []Tip{
	{
		Title:   "Mindful pause",
		Content: "Take 5 minutes for a mindful pause: close your eyes, notice your breathing and name 3 things you are grateful for.",
	},
	{
		Title:   "Move",
		Content: "Go for a 15 minute walk or do some light stretching. Movement improves mood and mental clarity.",
	},
	{
		Title:   "Breathe deeply",
		Content: "Take 10 deep breaths, in through the nose and out through the mouth. It calms the nervous system.",
	},
	{
		Title:   "Write",
		Content: "Spend 10 minutes writing freely about whatever is on your mind, without censorship or judgement. Writing helps organise thoughts.",
	},
	{
		Title:   "Set boundaries",
		Content: "Practise saying no to a request that would overload your schedule. Protecting your time is a crucial form of self-care.",
	},
	{
		Title:   "Connect",
		Content: "Message or call a friend or relative you have not talked to in a while. Social connections nourish well-being.",
	},
}

var resources = []Resource{
	{Name: "CVV - Centro de Valorização da Vida", Link: "https://www.cvv.org.br", Contact: "Call 188"},
	{Name: "Psy Meet", Link: "https://www.psymeet.com.br", Contact: "Online psychologists"},
}

// Tips возвращает копию всех подсказок.
func Tips() []Tip { return append([]Tip(nil), tips...) }

// Resources возвращает копию списка источников поддержки.
func Resources() []Resource { return append([]Resource(nil), resources...) }

// RandomTip выбирает любую подсказку.
func RandomTip(rng *rand.Rand) Tip {
	return tips[rng.Intn(len(tips))]
}

// NextTip выбирает случайную подсказку, отличную от current (по заголовку).
// После maxRerollAttempts попыток возвращает последнюю выбранную, даже если она совпала.
func NextTip(current Tip, rng *rand.Rand) Tip {
	var next Tip
	for attempt := 0; attempt < maxRerollAttempts; attempt++ {
		next = tips[rng.Intn(len(tips))]
		if next.Title != current.Title || len(tips) <= 1 {
			break
		}
	}
	return next
}
