package domain

type Company struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Address   string `db:"address" json:"address"`
	Email     string `db:"email" json:"email"`
	Phone     string `db:"phone" json:"phone"`
	GSTIN     string `db:"gstin" json:"gstin"`
	State     string `db:"state" json:"state"`
	CreatedAt string `db:"created_at" json:"created_at"`
}
