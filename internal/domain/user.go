package domain

type User struct {
	ID    string `bson:"_id" json:"id"`
	Email string `bson:"email" json:"email"`
	Name  string `bson:"name" json:"name"`
	Hash  string `bson:"password_hash" json:"-"`
	Role  string `bson:"role" json:"role"` // USER | ADMIN
}
