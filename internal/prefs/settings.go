package prefs

import "github.com/sirupsen/logrus"

// Settings holds the live preferences and writes every change back to the
// store. It is used from the UI loop only.
type Settings struct {
	store *Store
	cur   Preferences
	log   logrus.FieldLogger
}

// NewSettings loads the current preferences from store.
func NewSettings(store *Store, log logrus.FieldLogger) *Settings {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Settings{store: store, cur: store.Load(), log: log}
}

func (s *Settings) Current() Preferences { return s.cur }

func (s *Settings) Theme() string { return s.cur.Theme }

// VibrationEnabled has the signature host.Toggle expects.
func (s *Settings) VibrationEnabled() bool { return s.cur.Vibration }

// ToggleTheme switches between the classic and dark themes.
func (s *Settings) ToggleTheme() {
	if s.cur.Theme == ThemeDark {
		s.cur.Theme = ThemeClassic
	} else {
		s.cur.Theme = ThemeDark
	}
	s.save()
}

func (s *Settings) ToggleVibration() {
	s.cur.Vibration = !s.cur.Vibration
	s.save()
}

// save keeps the in-memory value even when the write fails.
func (s *Settings) save() {
	if err := s.store.Save(s.cur); err != nil {
		s.log.WithError(err).WithField("path", s.store.Path()).Warn("could not save preferences")
	}
}
