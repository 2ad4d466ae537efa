package domain

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle             UserState = "idle"
	StateChoosingDomain   UserState = "choosing_domain"
	StateChoosingLanguage UserState = "choosing_language"
	StateWaitingText      UserState = "waiting_text"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State    UserState
	Domain   string
	Language string
}

// Scope returns the terminology scope picked by the user
func (s *StateData) Scope() Scope {
	return NewScope(s.Domain, s.Language)
}
