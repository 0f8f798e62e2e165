package config

import "github.com/dwilkie/tropo-message/internal/domain"

// ProfileSet is the YAML document holding outbound message profiles:
//
//	profiles:
//	  reminder:
//	    description: appointment reminders
//	    params:
//	      from: "+15550001234"
//	      channel: TEXT
//	      network: SMS
type ProfileSet struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile is a named set of local params applied before the caller's own.
type Profile struct {
	Description string        `yaml:"description,omitempty"`
	Params      domain.Params `yaml:"params"`
}

// Find returns the profile with the given name, or nil if not found.
func (s *ProfileSet) Find(name string) *Profile {
	p, ok := s.Profiles[name]
	if !ok {
		return nil
	}
	return &p
}
