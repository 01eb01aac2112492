package models

import (
	"time"
)

// Profile is user-editable career data, stored one-per-user and keyed by the
// owning user's ID.
type Profile struct {
	UserID         string       `json:"user_id" bson:"user_id"`
	Status         string       `json:"status" bson:"status"`
	Company        string       `json:"company" bson:"company,omitempty"`
	Website        string       `json:"website" bson:"website,omitempty"`
	Location       string       `json:"location" bson:"location,omitempty"`
	Bio            string       `json:"bio" bson:"bio,omitempty"`
	GithubUsername string       `json:"github_username" bson:"github_username,omitempty"`
	Skills         []string     `json:"skills" bson:"skills"`
	Social         SocialLinks  `json:"social" bson:"social,omitempty"`
	Experience     []Experience `json:"experience" bson:"experience"`
	Education      []Education  `json:"education" bson:"education"`
	UpdatedAt      time.Time    `json:"updated_at" bson:"updated_at"`
}

type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty" bson:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty" bson:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
}

// Experience entries carry a generated ID so they can be removed individually.
type Experience struct {
	ID          string     `json:"id" bson:"id"`
	Title       string     `json:"title" bson:"title"`
	Company     string     `json:"company" bson:"company"`
	Location    string     `json:"location,omitempty" bson:"location,omitempty"`
	From        time.Time  `json:"from" bson:"from"`
	To          *time.Time `json:"to,omitempty" bson:"to,omitempty"`
	Current     bool       `json:"current" bson:"current"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
}

type Education struct {
	ID           string     `json:"id" bson:"id"`
	School       string     `json:"school" bson:"school"`
	Degree       string     `json:"degree" bson:"degree"`
	FieldOfStudy string     `json:"field_of_study" bson:"field_of_study"`
	From         time.Time  `json:"from" bson:"from"`
	To           *time.Time `json:"to,omitempty" bson:"to,omitempty"`
	Current      bool       `json:"current" bson:"current"`
	Description  string     `json:"description,omitempty" bson:"description,omitempty"`
}

// UpsertProfileRequest applies a partial merge: nil fields leave the stored
// value untouched.
type UpsertProfileRequest struct {
	Status         *string      `json:"status"`
	Company        *string      `json:"company"`
	Website        *string      `json:"website"`
	Location       *string      `json:"location"`
	Bio            *string      `json:"bio"`
	GithubUsername *string      `json:"github_username"`
	Skills         *[]string    `json:"skills"`
	Social         *SocialLinks `json:"social"`
}

type AddExperienceRequest struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

type AddEducationRequest struct {
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"field_of_study"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

func (r *UpsertProfileRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Status != nil && *r.Status == "" {
		errors["status"] = "Status cannot be empty"
	}
	if r.Skills != nil && len(*r.Skills) == 0 {
		errors["skills"] = "Skills cannot be empty"
	}

	return errors
}

func (r *AddExperienceRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Title == "" {
		errors["title"] = "Title is required"
	}
	if r.Company == "" {
		errors["company"] = "Company is required"
	}
	if r.From.IsZero() {
		errors["from"] = "From date is required"
	}
	if r.To != nil && r.To.Before(r.From) {
		errors["to"] = "To date must be after from date"
	}

	return errors
}

func (r *AddEducationRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.School == "" {
		errors["school"] = "School is required"
	}
	if r.Degree == "" {
		errors["degree"] = "Degree is required"
	}
	if r.FieldOfStudy == "" {
		errors["field_of_study"] = "Field of study is required"
	}
	if r.From.IsZero() {
		errors["from"] = "From date is required"
	}
	if r.To != nil && r.To.Before(r.From) {
		errors["to"] = "To date must be after from date"
	}

	return errors
}
