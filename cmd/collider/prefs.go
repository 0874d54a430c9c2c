package main

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	prefsAppName  = "sprite2d_collider"
	prefsObject   = "prefs"
	prefsProperty = "editor"
)

// Prefs are the operator settings kept between runs.
type Prefs struct {
	Zoom       int     `yaml:"zoom"`
	CircleStep float64 `yaml:"circle_step"`
}

func DefaultPrefs() Prefs {
	return Prefs{Zoom: 4, CircleStep: defaultCircleStep}
}

// prefStore persists Prefs through gdata. A nil manager stores nothing.
type prefStore struct {
	manager *gdata.Manager
	log     *zap.Logger
}

func openPrefs(log *zap.Logger) *prefStore {
	m, err := gdata.Open(gdata.Config{AppName: prefsAppName})
	if err != nil {
		log.Warn("preferences unavailable", zap.Error(err))
		m = nil
	}
	return &prefStore{manager: m, log: log}
}

func (s *prefStore) Load() Prefs {
	prefs := DefaultPrefs()
	if s.manager == nil || !s.manager.ObjectPropExists(prefsObject, prefsProperty) {
		return prefs
	}
	data, err := s.manager.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		s.log.Warn("load preferences", zap.Error(err))
		return prefs
	}
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		s.log.Warn("decode preferences", zap.Error(err))
		return DefaultPrefs()
	}
	return prefs.sanitize()
}

func (s *prefStore) Save(p Prefs) error {
	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(p.sanitize())
	if err != nil {
		return fmt.Errorf("prefs: marshal: %w", err)
	}
	if err := s.manager.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("prefs: save: %w", err)
	}
	return nil
}

func (p Prefs) sanitize() Prefs {
	d := DefaultPrefs()
	if p.Zoom < 1 || p.Zoom > 9 {
		p.Zoom = d.Zoom
	}
	if !(p.CircleStep > 0) {
		p.CircleStep = d.CircleStep
	}
	return p
}
