package domain

import "encoding/json"

// Session is the confirmation returned by the session exchange call.
// The backend does not publish a schema, so the raw payload is kept and
// the commonly seen user fields are decoded best-effort.
type Session struct {
	Raw  json.RawMessage `json:"-"`
	User *AppUser        `json:"user,omitempty"`
}

// ParseSession decodes a session exchange response. Both {data: {...}} and
// bare objects are accepted.
func ParseSession(raw json.RawMessage) (*Session, error) {
	s := &Session{Raw: raw}

	var wrapped struct {
		Data *struct {
			User    *AppUser `json:"user"`
			AppUser *AppUser `json:"app_user"`
		} `json:"data"`
		User *AppUser `json:"user"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, ErrParse.WithCause(err)
	}

	switch {
	case wrapped.Data != nil && wrapped.Data.User != nil:
		s.User = wrapped.Data.User
	case wrapped.Data != nil && wrapped.Data.AppUser != nil:
		s.User = wrapped.Data.AppUser
	default:
		s.User = wrapped.User
	}
	return s, nil
}

// MarshalJSON emits the raw payload so that json/yaml output shows exactly
// what the server returned.
func (s *Session) MarshalJSON() ([]byte, error) {
	if len(s.Raw) == 0 {
		return []byte("null"), nil
	}
	return s.Raw, nil
}
