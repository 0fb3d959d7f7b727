package repository

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var zeroID primitive.ObjectID

func insertedID(res *mongo.InsertOneResult) primitive.ObjectID {
	if res == nil {
		return zeroID
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id
}
