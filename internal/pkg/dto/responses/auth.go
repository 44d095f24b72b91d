package responses

type Signup struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type Login struct {
	User  LoggedInUser `json:"user"`
	Token string       `json:"token"`
}
