package engine

// Session is the state of one interactive user. It is owned by whichever
// controller drives the form and passed explicitly to every engine call.
type Session struct {
	Username string
	SignedIn bool
}

// NewSession returns a signed-out session.
func NewSession() *Session {
	return &Session{}
}

// RestoreSession returns a session for a user authenticated elsewhere, such as
// by a verified web token.
func RestoreSession(username string) *Session {
	return &Session{
		Username: username,
		SignedIn: username != "",
	}
}
