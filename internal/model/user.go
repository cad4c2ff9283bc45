package model

// User is an account that can own bookings.  Bookings do not require a
// user; anonymous passengers book with just a name and phone number.
// PasswordHash is optional and stored bcrypt-hashed when present.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – display name.
//  Email        – unique email address.
//  Phone        – contact number.
//  PasswordHash – bcrypt hash of the password, empty when unset.
//  Role         – account role, defaults to "user".
type User struct {
	ID           uint64 // users.id
	Name         string // users.name
	Email        string // users.email
	Phone        string // users.phone
	PasswordHash string // users.password_hash
	Role         string // users.role
}
