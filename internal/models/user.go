package models

// User represents a registered account. The username is immutable after
// creation and the password is stored only as a bcrypt digest.
type User struct {
	Base
	Username     string        `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string        `gorm:"not null" json:"-"`
	Transactions []Transaction `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
}
