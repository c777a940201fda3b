package models

// SessionState is the gh session as reported by `gh auth status`.
// It is owned by gh; the store's current user is only the tool's belief about it.
type SessionState struct {
	Authenticated bool   `json:"authenticated"`
	Account       string `json:"account,omitempty"`
	Host          string `json:"host,omitempty"`
	Detail        string `json:"detail,omitempty"`
}

func Unauthenticated(host string, detail string) SessionState {
	return SessionState{
		Authenticated: false,
		Host:          host,
		Detail:        detail,
	}
}

func AuthenticatedAs(host string, account string) SessionState {
	return SessionState{
		Authenticated: true,
		Account:       account,
		Host:          host,
	}
}
