package repo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Appointment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	PatientID string             `bson:"patientId" json:"patientId"`

	Name             string `bson:"name,omitempty" json:"name,omitempty"`
	Email            string `bson:"email,omitempty" json:"email,omitempty"`
	Phone            string `bson:"phone,omitempty" json:"phone,omitempty"`
	PrimaryPhysician string `bson:"primaryPhysician,omitempty" json:"primaryPhysician,omitempty"`

	Date               string `bson:"date" json:"date"`
	Time               string `bson:"time" json:"time"`
	Reason             string `bson:"reason,omitempty" json:"reason,omitempty"`
	Note               string `bson:"note,omitempty" json:"note,omitempty"`
	CancellationReason string `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`

	Status string `bson:"status" json:"status"`
	Type   string `bson:"type" json:"type"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AppointmentUpdate is a partial update; nil fields are left untouched.
type AppointmentUpdate struct {
	Date               *string
	Time               *string
	PrimaryPhysician   *string
	Reason             *string
	Note               *string
	CancellationReason *string
	Status             *string
	Type               *string
}

func (u AppointmentUpdate) setDoc(now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	put := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	put("date", u.Date)
	put("time", u.Time)
	put("primaryPhysician", u.PrimaryPhysician)
	put("reason", u.Reason)
	put("note", u.Note)
	put("cancellationReason", u.CancellationReason)
	put("status", u.Status)
	put("type", u.Type)
	return set
}

type AppointmentRepo struct {
	coll *mongo.Collection
}

func appointmentIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "_id", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
}

func (r *AppointmentRepo) Create(ctx context.Context, a *Appointment) error {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	a.CreatedAt = now
	a.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, a)
	return translate(err)
}

func (r *AppointmentRepo) Get(ctx context.Context, id string) (*Appointment, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var a Appointment
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&a); err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

// FindByUser returns every appointment for the user in insertion order.
func (r *AppointmentRepo) FindByUser(ctx context.Context, userID string) ([]*Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return r.find(ctx, bson.M{"userId": userID}, opts)
}

// ListRecent returns up to limit appointments, newest first.
func (r *AppointmentRepo) ListRecent(ctx context.Context, limit int) ([]*Appointment, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	return r.find(ctx, bson.M{}, opts)
}

func (r *AppointmentRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count appointments: %w", err)
	}
	return n, nil
}

// CountByStatus groups the whole collection by status.
func (r *AppointmentRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate appointment status: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode appointment status: %w", err)
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

// Update applies u and returns the document as stored afterwards.
func (r *AppointmentRepo) Update(ctx context.Context, id string, u AppointmentUpdate) (*Appointment, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": u.setDoc(time.Now().UTC())}

	var a Appointment
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&a); err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *AppointmentRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*Appointment, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find appointments: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]*Appointment, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode appointments: %w", err)
	}
	return out, nil
}
