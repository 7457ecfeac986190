package statusimpl

import "github.com/orgball2608/status-engine/internal/domain"

func (s *StatusImpl) CurrentSettings() domain.StatusSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Clone()
}

func (s *StatusImpl) UpdateSettings(patch domain.SettingsPatch) domain.StatusSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = s.settings.Apply(patch)
	s.persister.saveSettings(s.settings.Clone())
	s.Logger.Info("Status settings updated", "default_visibility", s.settings.DefaultVisibility)
	return s.settings.Clone()
}
