package repo

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func strPtr(s string) *string { return &s }

func TestAppointmentUpdateSetDoc(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("only supplied fields are set", func(t *testing.T) {
		doc := AppointmentUpdate{
			Date:   strPtr("2024-05-02"),
			Status: strPtr("scheduled"),
		}.setDoc(now)

		if len(doc) != 3 {
			t.Fatalf("expected 3 keys, got %d: %v", len(doc), doc)
		}
		if doc["date"] != "2024-05-02" {
			t.Errorf("date = %v", doc["date"])
		}
		if doc["status"] != "scheduled" {
			t.Errorf("status = %v", doc["status"])
		}
		if doc["updatedAt"] != now {
			t.Errorf("updatedAt = %v", doc["updatedAt"])
		}
		if _, ok := doc["time"]; ok {
			t.Error("time must not be set when nil")
		}
	})

	t.Run("empty string is a real value", func(t *testing.T) {
		doc := AppointmentUpdate{CancellationReason: strPtr("")}.setDoc(now)
		v, ok := doc["cancellationReason"]
		if !ok || v != "" {
			t.Errorf("cancellationReason = %v (present=%v)", v, ok)
		}
	})
}

func TestObjectID(t *testing.T) {
	want := primitive.NewObjectID()

	got, err := objectID(want.Hex())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("objectID() = %v, want %v", got, want)
	}

	if _, err := objectID("not-an-id"); !IsNotFound(err) {
		t.Errorf("malformed id should be not found, got %v", err)
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no documents", mongo.ErrNoDocuments, ErrNotFound},
		{"duplicate key", mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}, ErrDuplicate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.in)
			if tt.want == nil {
				if got != nil {
					t.Errorf("translate() = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("translate() = %v, want %v", got, tt.want)
			}
		})
	}
}
