package scrollfx

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// MotionPreference reports whether the user asked for reduced motion. It is
// read once when each controller is created; a later change only affects
// controllers mounted afterwards.
type MotionPreference interface {
	ReducedMotion() bool
}

// ReducedMotion is a constant MotionPreference.
type ReducedMotion bool

func (r ReducedMotion) ReducedMotion() bool { return bool(r) }

// MotionFunc adapts a function to MotionPreference.
type MotionFunc func() bool

func (f MotionFunc) ReducedMotion() bool { return f() }

// MotionSettings is the persisted accessibility and scrolling configuration.
type MotionSettings struct {
	ReducedMotion bool    `yaml:"reducedMotion"`
	ScrollSpeed   float64 `yaml:"scrollSpeed"` // wheel multiplier
}

// DefaultMotionSettings returns full motion at normal scroll speed.
func DefaultMotionSettings() MotionSettings {
	return MotionSettings{ScrollSpeed: 1}
}

const (
	settingsObject   = "settings"
	settingsProperty = "motion"
)

// SettingsStore loads and saves MotionSettings through gdata. A nil manager
// runs in memory only: Load and Save succeed and nothing is persisted.
type SettingsStore struct {
	data     *gdata.Manager
	settings MotionSettings
}

// NewSettingsStore creates a store and loads any saved settings. A load
// failure leaves defaults in place and is returned for logging; the store is
// always usable.
func NewSettingsStore(m *gdata.Manager) (*SettingsStore, error) {
	s := &SettingsStore{data: m, settings: DefaultMotionSettings()}
	if err := s.Load(); err != nil {
		return s, err
	}
	return s, nil
}

// OpenSettingsStore opens the gdata storage for appName and loads settings.
func OpenSettingsStore(appName string) (*SettingsStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return &SettingsStore{settings: DefaultMotionSettings()}, fmt.Errorf("open settings storage: %w", err)
	}
	return NewSettingsStore(m)
}

// Load reads saved settings. Missing settings yield defaults.
func (s *SettingsStore) Load() error {
	if s.data == nil || !s.data.ObjectPropExists(settingsObject, settingsProperty) {
		s.settings = DefaultMotionSettings()
		return nil
	}
	raw, err := s.data.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		s.settings = DefaultMotionSettings()
		return fmt.Errorf("load motion settings: %w", err)
	}
	loaded := DefaultMotionSettings()
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		s.settings = DefaultMotionSettings()
		return fmt.Errorf("unmarshal motion settings: %w", err)
	}
	if loaded.ScrollSpeed <= 0 {
		loaded.ScrollSpeed = 1
	}
	s.settings = loaded
	return nil
}

// Save persists the current settings.
func (s *SettingsStore) Save() error {
	if s.data == nil {
		return nil
	}
	raw, err := yaml.Marshal(s.settings)
	if err != nil {
		return fmt.Errorf("marshal motion settings: %w", err)
	}
	if err := s.data.SaveObjectProp(settingsObject, settingsProperty, raw); err != nil {
		return fmt.Errorf("save motion settings: %w", err)
	}
	return nil
}

// Settings returns the current settings.
func (s *SettingsStore) Settings() MotionSettings {
	return s.settings
}

// SetReducedMotion changes the preference in memory; call Save to persist.
func (s *SettingsStore) SetReducedMotion(v bool) {
	s.settings.ReducedMotion = v
}

// SetScrollSpeed changes the wheel multiplier in memory. Non-positive values
// reset it to 1.
func (s *SettingsStore) SetScrollSpeed(v float64) {
	if v <= 0 {
		v = 1
	}
	s.settings.ScrollSpeed = v
}

// ReducedMotion implements MotionPreference.
func (s *SettingsStore) ReducedMotion() bool {
	return s.settings.ReducedMotion
}
