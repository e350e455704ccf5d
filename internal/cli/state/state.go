// Package state хранит состояние экрана клиента как сериализуемую структуру.
// Менять его можно только через Dispatch, все изменения проходят через Reduce.
package state

import (
	"MoodKeeper/internal/cli/repo"
	"MoodKeeper/internal/journal"
	"errors"
	"time"
)

type View string

const (
	ViewIntro    View = "intro"
	ViewAuth     View = "auth"
	ViewHome     View = "home"
	ViewAdd      View = "add"
	ViewHistory  View = "history"
	ViewInsights View = "insights"
	ViewWellness View = "wellness"
)

type State struct {
	View      View             `json:"view"`
	User      *repo.User       `json:"user,omitempty"`
	IntroSeen bool             `json:"introSeen"`
	Window    journal.Window   `json:"window"`
	Records   []journal.Record `json:"records"`
	Summary   journal.Summary  `json:"summary"`
	Stale     bool             `json:"stale"`
	Draft     journal.Draft    `json:"draft"`
	Message   string           `json:"message,omitempty"`
}

// Initial - состояние на старте: экран вступления или входа.
func Initial(introSeen bool) State {
	s := State{
		IntroSeen: introSeen,
		Window:    journal.DefaultWindow,
		Summary:   journal.Summarize(nil, time.Time{}),
	}
	s.View = landing(s)
	return s
}

// Action - событие, меняющее состояние.
type Action interface{ isAction() }

type (
	IntroAcknowledged struct{}
	SignedIn          struct{ User repo.User }
	SignedOut         struct{}
	Navigate          struct{ To View }
	WindowChanged     struct{ Window journal.Window }
	SnapshotReceived  struct {
		Records []journal.Record
		Summary journal.Summary
		Stale   bool
	}
	CategorySelected struct{ Category journal.Category }
	DraftEdited      struct{ Draft journal.Draft }
	RecordSaved      struct{ Record journal.Record }
	Failed           struct{ Err error }
	MessageCleared   struct{}
)

func (IntroAcknowledged) isAction() {}
func (SignedIn) isAction()          {}
func (SignedOut) isAction()         {}
func (Navigate) isAction()          {}
func (WindowChanged) isAction()     {}
func (SnapshotReceived) isAction()  {}
func (CategorySelected) isAction()  {}
func (DraftEdited) isAction()       {}
func (RecordSaved) isAction()       {}
func (Failed) isAction()            {}
func (MessageCleared) isAction()    {}

// Reduce возвращает новое состояние; s не изменяется.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case IntroAcknowledged:
		s.IntroSeen = true
		s.View = landing(s)
	case SignedIn:
		u := a.User
		s.User = &u
		s.Message = ""
		s.View = landing(s)
	case SignedOut:
		// флаг вступления сбрасывается вместе с сессией
		s = Initial(false)
	case Navigate:
		s.View = a.To
		if !allowed(s) {
			s.View = landing(s)
		}
		if s.View == ViewAdd && s.Draft.Category == "" {
			s.Draft = journal.NewDraft(journal.Categories()[0])
		}
	case WindowChanged:
		s.Window = a.Window
	case SnapshotReceived:
		s.Records = append([]journal.Record(nil), a.Records...)
		s.Summary = a.Summary
		s.Stale = a.Stale
	case CategorySelected:
		s.Draft = journal.NewDraft(a.Category)
	case DraftEdited:
		s.Draft = a.Draft
	case RecordSaved:
		s.Draft = journal.Draft{}
		s.Message = "Record saved: " + journal.Title(a.Record)
		s.View = ViewHome
	case Failed:
		s.Message = failureMessage(a.Err)
	case MessageCleared:
		s.Message = ""
	}
	return s
}

func landing(s State) View {
	switch {
	case !s.IntroSeen:
		return ViewIntro
	case s.User == nil:
		return ViewAuth
	default:
		return ViewHome
	}
}

func allowed(s State) bool {
	switch s.View {
	case ViewIntro:
		return true
	case ViewAuth:
		return s.IntroSeen
	default:
		return s.IntroSeen && s.User != nil
	}
}

func failureMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, journal.ErrValidation) {
		return "Please check the form: " + err.Error()
	}
	return err.Error()
}
