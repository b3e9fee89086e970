package models

// SessionUser is the stubbed logged-in identity persisted under the
// current_user key. The password is kept only because the original product
// stored it; nothing verifies it against anything.
type SessionUser struct {
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// Profile is the persisted profile form (profile key).
type Profile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
}

// Settings is the persisted settings form (settings key).
type Settings struct {
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
	Language      string `json:"language"`
}
