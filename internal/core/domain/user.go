package domain

import "time"

// User models a registered account. PasswordHash and the opaque ledger fields
// (AirdropReceived, Transactions) never serialize: every read path returns the
// PublicUser projection instead.
type User struct {
	ID              string        `json:"id"`
	UserName        string        `json:"userName"`
	CodeName        string        `json:"codeName"`
	PasswordHash    string        `json:"-"`
	AirdropReceived bool          `json:"-"`
	Transactions    []Transaction `json:"-"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// Transaction is an opaque ledger entry attached to a user record. It is
// persisted but excluded from every response served by this service.
type Transaction struct {
	Amount    float64   `json:"amount" bson:"amount"`
	Reference string    `json:"reference" bson:"reference"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// PublicUser is the canonical projection returned by all read endpoints.
type PublicUser struct {
	ID        string    `json:"id"`
	UserName  string    `json:"userName"`
	CodeName  string    `json:"codeName"`
	CreatedAt time.Time `json:"created_at"`
}

// Public returns the projection of u safe to serve to any caller.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		UserName:  u.UserName,
		CodeName:  u.CodeName,
		CreatedAt: u.CreatedAt,
	}
}
