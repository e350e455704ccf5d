package journal

import (
	"strings"
	"unicode/utf8"
)

const (
	excerptLen    = 50
	anonymousName = "Anonymous user"
)

var labels = func() map[string]string {
	m := make(map[string]string)
	for _, s := range registry {
		m[string(s.Category)] = s.Label
		for _, o := range s.Options {
			m[o.ID] = o.Label
		}
		if s.SubAttribute != nil {
			for _, o := range s.SubAttribute.Options {
				m[o.ID] = o.Label
			}
		}
	}
	return m
}()

// Label возвращает подпись варианта или категории по id; неизвестный id возвращается как есть.
func Label(id string) string {
	if l, ok := labels[id]; ok {
		return l
	}
	return id
}

// Title собирает однострочный заголовок записи для истории.
func Title(r Record) string {
	title := Label(string(r.Category))
	if r.CategoryValue != "" {
		title = Label(r.CategoryValue)
	}

	switch {
	case r.Category == Health && r.PainValue != "":
		pain := Label(r.PainValue)
		if r.PainValue != PainNone {
			title += " (with " + strings.ToLower(pain) + ")"
		} else {
			title += " (" + pain + ")"
		}
	case r.Category == ScreenTime && r.ScreenTimeValue != "":
		title += " (" + Label(r.ScreenTimeValue) + ")"
	case r.Category == Cycle && r.SeverityValue != "":
		title += " (Intensity: " + Label(r.SeverityValue) + ")"
	}
	return title
}

// Excerpt обрезает текст заметки до 50 символов.
func Excerpt(content string) string {
	if utf8.RuneCountInString(content) <= excerptLen {
		return content
	}
	return string([]rune(content)[:excerptLen]) + "..."
}

// DisplayName выбирает имя для приветствия: displayName, затем login.
func DisplayName(displayName, login string) string {
	if s := strings.TrimSpace(displayName); s != "" {
		return s
	}
	if s := strings.TrimSpace(login); s != "" {
		return s
	}
	return anonymousName
}
