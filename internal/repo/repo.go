package repo

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Alijeyrad/carepulse_backend/pkg/database"
)

// Client groups the collection-backed repositories.
type Client struct {
	db *mongo.Database

	Users        *UserRepo
	Patients     *PatientRepo
	Appointments *AppointmentRepo
}

func New(db *mongo.Database, cfg database.Config) *Client {
	return &Client{
		db:           db,
		Users:        &UserRepo{coll: db.Collection(cfg.UsersCollection)},
		Patients:     &PatientRepo{coll: db.Collection(cfg.PatientsCollection)},
		Appointments: &AppointmentRepo{coll: db.Collection(cfg.AppointmentsCollection)},
	}
}

// EnsureIndexes builds every index the repositories rely on. Index creation
// is idempotent, so this runs on each start and from `system migrate`.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	sets := []struct {
		coll   *mongo.Collection
		models []mongo.IndexModel
	}{
		{c.Users.coll, userIndexes()},
		{c.Patients.coll, patientIndexes()},
		{c.Appointments.coll, appointmentIndexes()},
	}

	for _, s := range sets {
		names, err := s.coll.Indexes().CreateMany(ctx, s.models)
		if err != nil {
			return fmt.Errorf("create indexes on %s: %w", s.coll.Name(), err)
		}
		slog.Debug("indexes ensured", "collection", s.coll.Name(), "indexes", names)
	}
	return nil
}

// Ping reports whether the primary is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.db.Client().Ping(ctx, readpref.Primary())
}
