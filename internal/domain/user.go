package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID            primitive.ObjectID `json:"_id,omitzero" bson:"_id,omitempty"`
	Username      string             `json:"username" bson:"username"`
	PasswordHash  string             `json:"-" bson:"password"`
	Administrator bool               `json:"administrator" bson:"administrator"`
}

// Identity es el resultado de una verificación de credenciales exitosa.
type Identity struct {
	Username      string
	Administrator bool
}
