package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Game es el resultado de un partido. Date usa el formato YYYY-MM-DD.
type Game struct {
	ID          primitive.ObjectID `json:"_id,omitzero" bson:"_id,omitempty"`
	Date        string             `json:"date" bson:"date"`
	WinningTeam string             `json:"winningTeam" bson:"winningTeam"`
	LosingTeam  string             `json:"losingTeam" bson:"losingTeam"`
	Rating      int                `json:"rating" bson:"rating"`
}
