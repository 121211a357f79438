package domain

type User struct {
	ID             int64  `db:"id"`
	Name           string `db:"name"`
	Email          string `db:"email"`
	ExternalID     string `db:"external_id"`
	HashedPassword string `db:"hashed_password"`
	CreatedAt      int64  `db:"created_at"`
	UpdatedAt      int64  `db:"updated_at"`
}
