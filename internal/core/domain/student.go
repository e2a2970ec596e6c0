package domain

import "strings"

// Student is a learner enrolled at the center.
type Student struct {
	ID                   ID     `json:"id"`
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	DateOfBirth          string `json:"date_of_birth,omitempty"`
	IdentificationNumber string `json:"identification_number,omitempty"`
}

// FullName joins first and last name.
func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// AppUser is the mini-app account (usually a parent) a registration belongs to.
type AppUser struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// StudentRegistration links an app user to a student.
type StudentRegistration struct {
	ID        ID       `json:"id"`
	Student   *Student `json:"student,omitempty"`
	AppUser   *AppUser `json:"app_user,omitempty"`
	CreatedAt string   `json:"created_at,omitempty"`
}

// NewRegistration is the request body for registering a student.
type NewRegistration struct {
	FirstName            string `json:"first_name" validate:"required,notblank,max=100"`
	LastName             string `json:"last_name" validate:"required,notblank,max=100"`
	DateOfBirth          string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	IdentificationNumber string `json:"identification_number" validate:"required,number,min=9,max=12"`
}
