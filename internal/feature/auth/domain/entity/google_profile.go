package entity

// GoogleProfile is the subset of the Google userinfo response used to sign a user in.
type GoogleProfile struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}
