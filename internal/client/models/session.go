package models

// AuthState is the position of the client in the OTP login flow.
type AuthState string

const (
	StateAnonymous     AuthState = "anonymous"
	StateChallengeSent AuthState = "challenge-sent"
	StateAuthenticated AuthState = "authenticated"
)

// Session is the credential pair returned by a successful OTP validation.
// Token and UserID are either both set or both empty.
type Session struct {
	Token  string
	UserID string
}

// NewSession returns a session holding both values, or the zero session when
// either of them is empty.
func NewSession(token, userID string) Session {
	if token == "" || userID == "" {
		return Session{}
	}
	return Session{Token: token, UserID: userID}
}

func (s Session) IsAuthenticated() bool {
	return s.Token != "" && s.UserID != ""
}
