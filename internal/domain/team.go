package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Team es un equipo registrado en una disciplina.
type Team struct {
	ID              primitive.ObjectID `json:"_id,omitzero" bson:"_id,omitempty"`
	Name            string             `json:"name" bson:"name"`
	Sport           string             `json:"sport" bson:"sport"`
	CountryOfOrigin string             `json:"countryOfOrigin" bson:"countryOfOrigin"`
}
