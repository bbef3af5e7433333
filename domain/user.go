package domain

type User struct {
	ID        int64  `json:"id" db:"id"`
	UserName  string `json:"userName" db:"user_name"`
	Email     string `json:"email" db:"email"`
	Password  string `json:"password,omitempty" db:"password"`
	CreatedAt string `json:"created_at,omitempty" db:"created_at"`
}
