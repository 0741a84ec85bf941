package entities

import "time"

// Account is the top-level tenancy boundary. Every user and every task
// belongs to exactly one account.
type Account struct {
	ID          int64     `json:"idAccount" db:"id_account"`
	Name        string    `json:"name" db:"name"`
	DateCreated time.Time `json:"dateCreated" db:"date_created"`
}

// User belongs to an account and owns tasks together with it; the
// (account, user) pair is the ownership scope for every task operation.
type User struct {
	ID           int64     `json:"idUser" db:"id_user"`
	AccountID    int64     `json:"idAccount" db:"id_account"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	DateCreated  time.Time `json:"dateCreated" db:"date_created"`
}

// Principal identifies the authenticated caller. It is resolved by the
// auth layer and passed explicitly into the service; nothing below the
// HTTP surface reads it from ambient state.
type Principal struct {
	AccountID int64
	UserID    int64
}
