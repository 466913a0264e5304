package models

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// User is the profile returned by GET /profile. Read-only on the client.
type User struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Gender Gender `json:"gender"`
}
