package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/carepulse_backend/internal/service/patient"
)

const formFieldIdentificationDocument = "identificationDocument"

type PatientHandler struct {
	svc patient.Service
}

func NewPatientHandler(svc patient.Service) *PatientHandler {
	return &PatientHandler{svc: svc}
}

func mapPatientError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, patient.ErrNotFound),
		errors.Is(err, patient.ErrNoDocument):
		return notFound(c, err.Error())
	case errors.Is(err, patient.ErrAlreadyRegistered):
		return conflict(c, err.Error())
	case errors.Is(err, patient.ErrInvalidInput),
		errors.Is(err, patient.ErrConsentRequired):
		return badRequest(c, err.Error())
	case errors.Is(err, patient.ErrUploadFailed):
		return badGateway(c, err.Error())
	default:
		return internalError(c)
	}
}

// registerForm accepts both JSON and multipart bodies.
type registerForm struct {
	UserID    string `json:"userId" form:"userId"`
	Name      string `json:"name" form:"name"`
	Email     string `json:"email" form:"email"`
	Phone     string `json:"phone" form:"phone"`
	BirthDate string `json:"birthDate" form:"birthDate"`
	Gender    string `json:"gender" form:"gender"`
	Address   string `json:"address" form:"address"`

	Occupation             string `json:"occupation" form:"occupation"`
	EmergencyContactName   string `json:"emergencyContactName" form:"emergencyContactName"`
	EmergencyContactNumber string `json:"emergencyContactNumber" form:"emergencyContactNumber"`
	PrimaryPhysician       string `json:"primaryPhysician" form:"primaryPhysician"`

	InsuranceProvider     string `json:"insuranceProvider" form:"insuranceProvider"`
	InsurancePolicyNumber string `json:"insurancePolicyNumber" form:"insurancePolicyNumber"`

	Allergies            string `json:"allergies" form:"allergies"`
	CurrentMedication    string `json:"currentMedication" form:"currentMedication"`
	FamilyMedicalHistory string `json:"familyMedicalHistory" form:"familyMedicalHistory"`
	PastMedicalHistory   string `json:"pastMedicalHistory" form:"pastMedicalHistory"`

	IdentificationType   string `json:"identificationType" form:"identificationType"`
	IdentificationNumber string `json:"identificationNumber" form:"identificationNumber"`

	TreatmentConsent  bool `json:"treatmentConsent" form:"treatmentConsent"`
	DisclosureConsent bool `json:"disclosureConsent" form:"disclosureConsent"`
	PrivacyConsent    bool `json:"privacyConsent" form:"privacyConsent"`
}

// parseBirthDate accepts a calendar date or an RFC 3339 timestamp.
func parseBirthDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// POST /api/v1/patients
func (h *PatientHandler) Register(c fiber.Ctx) error {
	var body registerForm
	if err := c.Bind().Body(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	birthDate, err := parseBirthDate(body.BirthDate)
	if err != nil {
		return badRequest(c, "invalid birthDate")
	}

	var doc *patient.Document
	if fh, err := c.FormFile(formFieldIdentificationDocument); err == nil {
		f, err := fh.Open()
		if err != nil {
			return badRequest(c, "unreadable identification document")
		}
		defer f.Close()
		doc = &patient.Document{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		}
	}

	p, err := h.svc.Register(c.Context(), patient.RegisterRequest{
		UserID:                 body.UserID,
		Name:                   body.Name,
		Email:                  body.Email,
		Phone:                  body.Phone,
		BirthDate:              birthDate,
		Gender:                 body.Gender,
		Address:                body.Address,
		Occupation:             body.Occupation,
		EmergencyContactName:   body.EmergencyContactName,
		EmergencyContactNumber: body.EmergencyContactNumber,
		PrimaryPhysician:       body.PrimaryPhysician,
		InsuranceProvider:      body.InsuranceProvider,
		InsurancePolicyNumber:  body.InsurancePolicyNumber,
		Allergies:              body.Allergies,
		CurrentMedication:      body.CurrentMedication,
		FamilyMedicalHistory:   body.FamilyMedicalHistory,
		PastMedicalHistory:     body.PastMedicalHistory,
		IdentificationType:     body.IdentificationType,
		IdentificationNumber:   body.IdentificationNumber,
		TreatmentConsent:       body.TreatmentConsent,
		DisclosureConsent:      body.DisclosureConsent,
		PrivacyConsent:         body.PrivacyConsent,
	}, doc)
	if err != nil {
		return mapPatientError(c, err)
	}

	return created(c, p)
}

// GET /api/v1/admin/patients/:userId/document
func (h *PatientHandler) Document(c fiber.Ctx) error {
	url, err := h.svc.DocumentURL(c.Context(), c.Params("userId"))
	if err != nil {
		return mapPatientError(c, err)
	}
	return ok(c, fiber.Map{"url": url})
}
