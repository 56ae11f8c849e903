package types

// User roles. At most one account may hold RoleAdmin at any time.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account in the system.
type User struct {
	// ID is the document identifier of the user. It is not stored as a
	// field; it is the key of the user document itself.
	ID string `json:"id" firestore:"-"`

	// Email is the user's email address, used as the login key.
	Email string `json:"email" firestore:"email"`

	// Username is the display name chosen by the user.
	Username string `json:"username" firestore:"username"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" firestore:"password"`

	// Role indicates the user's authorization level within the system
	// ("admin" or "user").
	Role string `json:"role" firestore:"role"`
}
