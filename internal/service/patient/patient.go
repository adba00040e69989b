package patient

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Alijeyrad/carepulse_backend/internal/repo"
	"github.com/Alijeyrad/carepulse_backend/pkg/crypto"
	"github.com/Alijeyrad/carepulse_backend/pkg/reqctx"
)

type Store interface {
	Create(ctx context.Context, p *repo.Patient) error
	FindByUserID(ctx context.Context, userID string) (*repo.Patient, error)
}

// Storage is the object store holding identification documents.
type Storage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
	ViewURL(fileID string) string
	PresignDownload(ctx context.Context, key string) (string, error)
}

type RegisterRequest struct {
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	BirthDate time.Time `json:"birthDate"`
	Gender    string    `json:"gender"`
	Address   string    `json:"address"`

	Occupation             string `json:"occupation"`
	EmergencyContactName   string `json:"emergencyContactName"`
	EmergencyContactNumber string `json:"emergencyContactNumber"`
	PrimaryPhysician       string `json:"primaryPhysician"`

	InsuranceProvider     string `json:"insuranceProvider"`
	InsurancePolicyNumber string `json:"insurancePolicyNumber"`

	Allergies            string `json:"allergies"`
	CurrentMedication    string `json:"currentMedication"`
	FamilyMedicalHistory string `json:"familyMedicalHistory"`
	PastMedicalHistory   string `json:"pastMedicalHistory"`

	IdentificationType   string `json:"identificationType"`
	IdentificationNumber string `json:"identificationNumber"`

	TreatmentConsent  bool `json:"treatmentConsent"`
	DisclosureConsent bool `json:"disclosureConsent"`
	PrivacyConsent    bool `json:"privacyConsent"`
}

// Document is an uploaded identification file.
type Document struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest, doc *Document) (*repo.Patient, error)
	GetByUserID(ctx context.Context, userID string) (*repo.Patient, error)

	// DocumentURL returns a short-lived download link for the patient's
	// identification document.
	DocumentURL(ctx context.Context, userID string) (string, error)
}

type PatientService struct {
	store   Store
	storage Storage
	key     []byte
}

// New builds the patient service. key is the 32-byte AES key used for the
// identification and insurance policy numbers; storage may be nil when no
// bucket is configured, in which case documents are rejected.
func New(store Store, storage Storage, key []byte) *PatientService {
	return &PatientService{store: store, storage: storage, key: key}
}

func (s *PatientService) Register(ctx context.Context, req RegisterRequest, doc *Document) (*repo.Patient, error) {
	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: userId and name are required", ErrInvalidInput)
	}
	if !req.TreatmentConsent || !req.PrivacyConsent {
		return nil, ErrConsentRequired
	}

	p := &repo.Patient{
		UserID:                 req.UserID,
		Name:                   strings.TrimSpace(req.Name),
		Email:                  strings.TrimSpace(req.Email),
		Phone:                  strings.TrimSpace(req.Phone),
		BirthDate:              req.BirthDate,
		Gender:                 req.Gender,
		Address:                req.Address,
		Occupation:             req.Occupation,
		EmergencyContactName:   req.EmergencyContactName,
		EmergencyContactNumber: req.EmergencyContactNumber,
		PrimaryPhysician:       req.PrimaryPhysician,
		InsuranceProvider:      req.InsuranceProvider,
		Allergies:              req.Allergies,
		CurrentMedication:      req.CurrentMedication,
		FamilyMedicalHistory:   req.FamilyMedicalHistory,
		PastMedicalHistory:     req.PastMedicalHistory,
		IdentificationType:     req.IdentificationType,
		TreatmentConsent:       req.TreatmentConsent,
		DisclosureConsent:      req.DisclosureConsent,
		PrivacyConsent:         req.PrivacyConsent,
	}

	var err error
	if p.InsurancePolicyNumber, err = s.seal(req.InsurancePolicyNumber); err != nil {
		return nil, err
	}
	if p.IdentificationNumber, err = s.seal(req.IdentificationNumber); err != nil {
		return nil, err
	}

	if doc != nil && doc.Body != nil {
		if s.storage == nil {
			return nil, fmt.Errorf("%w: object storage is not configured", ErrUploadFailed)
		}
		fileID := uuid.NewString() + strings.ToLower(filepath.Ext(doc.Filename))
		if err := s.storage.Upload(ctx, fileID, doc.ContentType, doc.Body, doc.Size); err != nil {
			reqctx.Logger(ctx).Error("patient: document upload failed", "user_id", req.UserID, "err", err)
			return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
		p.IdentificationDocumentID = fileID
		p.IdentificationDocumentURL = s.storage.ViewURL(fileID)
	}

	if err := s.store.Create(ctx, p); err != nil {
		s.discard(p.IdentificationDocumentID)
		if repo.IsDuplicate(err) {
			return nil, ErrAlreadyRegistered
		}
		reqctx.Logger(ctx).Error("patient: create failed", "user_id", req.UserID, "err", err)
		return nil, fmt.Errorf("create patient: %w", err)
	}

	return p, nil
}

func (s *PatientService) GetByUserID(ctx context.Context, userID string) (*repo.Patient, error) {
	p, err := s.store.FindByUserID(ctx, userID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query patient: %w", err)
	}
	return p, nil
}

func (s *PatientService) DocumentURL(ctx context.Context, userID string) (string, error) {
	p, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if p.IdentificationDocumentID == "" {
		return "", ErrNoDocument
	}
	if s.storage == nil {
		return "", fmt.Errorf("%w: object storage is not configured", ErrUploadFailed)
	}
	url, err := s.storage.PresignDownload(ctx, p.IdentificationDocumentID)
	if err != nil {
		return "", fmt.Errorf("presign document: %w", err)
	}
	return url, nil
}

func (s *PatientService) seal(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	out, err := crypto.Encrypt(s.key, v)
	if err != nil {
		return "", fmt.Errorf("encrypt patient field: %w", err)
	}
	return out, nil
}

// discard removes an uploaded object whose patient document never landed.
func (s *PatientService) discard(fileID string) {
	if fileID == "" || s.storage == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.storage.Delete(ctx, fileID); err != nil {
		slog.Warn("patient: orphaned document not removed", "file_id", fileID, "err", err)
	}
}
