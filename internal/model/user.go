package model

// User is the record created at sign-up. The vitals columns hold placeholder
// zero/empty values; real submissions are stored as Submission rows.
//
// Password is stored and compared in cleartext. Anything intended for real use
// must hash it before it reaches storage.
type User struct {
	Username string   `json:"username"`
	Password string   `json:"-"`
	Vitals   RawInput `json:"vitals"`
}

// NewUser returns a user with placeholder vitals.
func NewUser(username, password string) *User {
	return &User{
		Username: username,
		Password: password,
	}
}
