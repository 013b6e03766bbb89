package domain

import "time"

// User is an authenticated member of an account. API keys are stored hashed;
// the raw key is shown once at onboarding.
type User struct {
	ID          string     `json:"id" db:"id"`
	AccountID   string     `json:"accountId" db:"account_id"`
	Email       string     `json:"email" db:"email"`
	Name        string     `json:"name" db:"name"`
	APIKeyHash  string     `json:"-" db:"api_key_hash"`
	OnboardedAt *time.Time `json:"onboardedAt,omitempty" db:"onboarded_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}

// Organization is a company a contact belongs to.
type Organization struct {
	ID        string    `json:"id" db:"id"`
	AccountID string    `json:"-" db:"account_id"`
	Name      string    `json:"name" db:"name"`
	Domain    string    `json:"domain,omitempty" db:"domain"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Contact is a person tracked by an account. All timeline events hang off a
// contact, and every read is scoped by the owning account.
type Contact struct {
	ID             string    `json:"id" db:"id"`
	AccountID      string    `json:"-" db:"account_id"`
	OrganizationID string    `json:"organizationId,omitempty" db:"organization_id"`
	FirstName      string    `json:"firstName" db:"first_name"`
	LastName       string    `json:"lastName" db:"last_name"`
	Email          string    `json:"email,omitempty" db:"email"`
	Title          string    `json:"title,omitempty" db:"title"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// SavedView is a user-named filter preset over the contact list.
type SavedView struct {
	ID        string    `json:"id" db:"id"`
	AccountID string    `json:"-" db:"account_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Filters   string    `json:"filters" db:"filters"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
