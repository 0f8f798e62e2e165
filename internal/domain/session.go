package domain

import "encoding/json"

// Snapshot is an inbound event as delivered by the platform:
//
//	{"session": {"id": "...", "parameters": {"to": "...", ...}, ...}}
//
// Members other than session are ignored when decoding.
type Snapshot struct {
	Session *Session `json:"session,omitempty" yaml:"session,omitempty"`
}

// Session holds the session metadata of a Snapshot. Members without a
// field of their own, such as the platform's from and to objects, are kept
// in Extra as raw JSON and written back when the session is encoded.
type Session struct {
	ID          string  `json:"id,omitempty" yaml:"id,omitempty"`
	AccountID   string  `json:"accountId,omitempty" yaml:"accountId,omitempty"`
	CallID      string  `json:"callId,omitempty" yaml:"callId,omitempty"`
	Timestamp   string  `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	UserType    string  `json:"userType,omitempty" yaml:"userType,omitempty"`
	InitialText string  `json:"initialText,omitempty" yaml:"initialText,omitempty"`
	Parameters  *Params `json:"parameters,omitempty" yaml:"parameters,omitempty"`

	Extra map[string]json.RawMessage `json:"-" yaml:"-"`
}

// sessionFields are the JSON members Session decodes into named fields.
var sessionFields = []string{"id", "accountId", "callId", "timestamp", "userType", "initialText", "parameters"}

// sessionAlias drops the methods of Session so the default codec applies.
type sessionAlias Session

// UnmarshalJSON decodes the named fields and keeps every other member in
// Extra.
func (s *Session) UnmarshalJSON(data []byte) error {
	var named sessionAlias
	if err := json.Unmarshal(data, &named); err != nil {
		return err
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	for _, key := range sessionFields {
		delete(members, key)
	}
	named.Extra = nil
	if len(members) > 0 {
		named.Extra = members
	}

	*s = Session(named)
	return nil
}

// MarshalJSON encodes the named fields together with Extra. A named field
// wins over an Extra member of the same name.
func (s Session) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(sessionAlias(s))
	if err != nil || len(s.Extra) == 0 {
		return data, err
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, err
	}
	for key, value := range s.Extra {
		if _, ok := members[key]; !ok {
			members[key] = value
		}
	}
	return json.Marshal(members)
}

// Parameters returns the session parameters, or an empty Params when the
// snapshot has no session or the session has no parameters.
func (s Snapshot) Parameters() Params {
	if s.Session == nil || s.Session.Parameters == nil {
		return Params{}
	}
	return *s.Session.Parameters
}

// HasParameters reports whether the snapshot carries a non-empty
// parameters mapping.
func (s Snapshot) HasParameters() bool {
	return s.Session != nil && s.Session.Parameters != nil && s.Session.Parameters.Len() > 0
}

// ID returns the session id, or "" when absent.
func (s Snapshot) ID() string {
	if s.Session == nil {
		return ""
	}
	return s.Session.ID
}

// Clone returns a deep copy so the caller's snapshot can change freely.
func (s Snapshot) Clone() Snapshot {
	if s.Session == nil {
		return Snapshot{}
	}
	session := *s.Session
	if s.Session.Extra != nil {
		session.Extra = make(map[string]json.RawMessage, len(s.Session.Extra))
		for key, value := range s.Session.Extra {
			session.Extra[key] = append(json.RawMessage(nil), value...)
		}
	}
	if s.Session.Parameters != nil {
		params := s.Session.Parameters.Clone()
		session.Parameters = &params
	}
	return Snapshot{Session: &session}
}
