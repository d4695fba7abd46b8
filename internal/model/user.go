package model

// User is an operator account for the management console. Unrelated to
// Member: users log in, members pay dues.
type User struct {
	ID uint32 `gorm:"column:id;primaryKey;autoIncrement"`

	Username string `gorm:"column:username;type:varchar(100);not null;uniqueIndex:idx_user_username"`
	Email    string `gorm:"column:email;type:varchar(255);not null;uniqueIndex:idx_user_email"`
	Password string `gorm:"column:password;type:varchar(60);not null"` // bcrypt hash
	IsActive bool   `gorm:"column:is_active;not null;default:true"`

	BaseEntity
}

// TableName specifies the table name for User
func (*User) TableName() string {
	return "users"
}
