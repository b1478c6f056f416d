package domain

type Supplier struct {
	ID            string  `db:"id" json:"id"`
	Name          string  `db:"name" json:"name"`
	ContactPerson string  `db:"contact_person" json:"contact_person"`
	Phone         string  `db:"phone" json:"phone"`
	Email         *string `db:"email" json:"email,omitempty"`
	Address       *string `db:"address" json:"address,omitempty"`
	CreatedAt     string  `db:"created_at" json:"created_at"`
}
