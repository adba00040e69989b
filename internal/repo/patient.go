package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Patient is the intake record. IdentificationNumber and
// InsurancePolicyNumber hold ciphertext at rest.
type Patient struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID string             `bson:"userId" json:"userId"`

	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone" json:"phone"`
	BirthDate time.Time `bson:"birthDate" json:"birthDate"`
	Gender    string    `bson:"gender" json:"gender"`
	Address   string    `bson:"address" json:"address"`

	Occupation             string `bson:"occupation" json:"occupation"`
	EmergencyContactName   string `bson:"emergencyContactName" json:"emergencyContactName"`
	EmergencyContactNumber string `bson:"emergencyContactNumber" json:"emergencyContactNumber"`
	PrimaryPhysician       string `bson:"primaryPhysician" json:"primaryPhysician"`

	InsuranceProvider     string `bson:"insuranceProvider" json:"insuranceProvider"`
	InsurancePolicyNumber string `bson:"insurancePolicyNumber" json:"insurancePolicyNumber"`

	Allergies            string `bson:"allergies,omitempty" json:"allergies,omitempty"`
	CurrentMedication    string `bson:"currentMedication,omitempty" json:"currentMedication,omitempty"`
	FamilyMedicalHistory string `bson:"familyMedicalHistory,omitempty" json:"familyMedicalHistory,omitempty"`
	PastMedicalHistory   string `bson:"pastMedicalHistory,omitempty" json:"pastMedicalHistory,omitempty"`

	IdentificationType        string `bson:"identificationType,omitempty" json:"identificationType,omitempty"`
	IdentificationNumber      string `bson:"identificationNumber,omitempty" json:"identificationNumber,omitempty"`
	IdentificationDocumentID  string `bson:"identificationDocumentId,omitempty" json:"identificationDocumentId,omitempty"`
	IdentificationDocumentURL string `bson:"identificationDocumentUrl,omitempty" json:"identificationDocumentUrl,omitempty"`

	TreatmentConsent  bool `bson:"treatmentConsent" json:"treatmentConsent"`
	DisclosureConsent bool `bson:"disclosureConsent" json:"disclosureConsent"`
	PrivacyConsent    bool `bson:"privacyConsent" json:"privacyConsent"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type PatientRepo struct {
	coll *mongo.Collection
}

func patientIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
}

func (r *PatientRepo) Create(ctx context.Context, p *Patient) error {
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now().UTC()

	_, err := r.coll.InsertOne(ctx, p)
	return translate(err)
}

// FindByUserID returns the oldest patient document for the user.
func (r *PatientRepo) FindByUserID(ctx context.Context, userID string) (*Patient, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})

	var p Patient
	if err := r.coll.FindOne(ctx, bson.M{"userId": userID}, opts).Decode(&p); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}
