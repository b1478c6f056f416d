package domain

type Customer struct {
	ID        string  `db:"id" json:"id"`
	Name      string  `db:"name" json:"name"`
	Phone     string  `db:"phone" json:"phone"`
	Email     *string `db:"email" json:"email,omitempty"`
	Address   *string `db:"address" json:"address,omitempty"`
	CreatedAt string  `db:"created_at" json:"created_at"`
}
