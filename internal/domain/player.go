package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Player es un jugador con su equipo y puntaje acumulado.
type Player struct {
	ID     primitive.ObjectID `json:"_id,omitzero" bson:"_id,omitempty"`
	Name   string             `json:"name" bson:"name"`
	Team   string             `json:"team" bson:"team"`
	Age    int                `json:"age" bson:"age"`
	Points int                `json:"points" bson:"points"`
}
