package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type UserRepo struct {
	coll *mongo.Collection
}

func userIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "phone", Value: 1}}},
	}
}

// Create assigns the id and creation time, then inserts u.
func (r *UserRepo) Create(ctx context.Context, u *User) error {
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now().UTC()

	_, err := r.coll.InsertOne(ctx, u)
	return translate(err)
}

func (r *UserRepo) Get(ctx context.Context, id string) (*User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var u User
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&u); err != nil {
		return nil, translate(err)
	}
	return &u, nil
}
