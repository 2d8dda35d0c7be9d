package domain

// User is a back-office operator account.
type User struct {
	UserID       string `json:"userID"` // Primary key (UUID)
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"` // bcrypt hash, never serialised
	IsActive     bool   `json:"isActive"`
	AuditFields
}
