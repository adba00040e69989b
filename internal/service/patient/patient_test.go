package patient

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/carepulse_backend/internal/repo"
	"github.com/Alijeyrad/carepulse_backend/pkg/crypto"
	"github.com/Alijeyrad/carepulse_backend/pkg/s3"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

type fakeStore struct {
	byUser    map[string]*repo.Patient
	createErr error
}

func (f *fakeStore) Create(_ context.Context, p *repo.Patient) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byUser[p.UserID]; ok {
		return repo.ErrDuplicate
	}
	f.byUser[p.UserID] = p
	return nil
}

func (f *fakeStore) FindByUserID(_ context.Context, userID string) (*repo.Patient, error) {
	p, ok := f.byUser[userID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return p, nil
}

type fakeStorage struct {
	objects map[string]string
	deleted []string
}

func (f *fakeStorage) Upload(_ context.Context, key, _ string, body io.Reader, _ int64) error {
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.objects[key] = string(b)
	return nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) PresignDownload(_ context.Context, key string) (string, error) {
	if _, ok := f.objects[key]; !ok {
		return "", errors.New("no such key")
	}
	return "https://files.example.com/signed/" + key, nil
}

func (f *fakeStorage) ViewURL(fileID string) string {
	return s3.ViewURL("https://files.example.com", "docs", fileID, "proj")
}

func newTestService() (*PatientService, *fakeStore, *fakeStorage) {
	store := &fakeStore{byUser: map[string]*repo.Patient{}}
	storage := &fakeStorage{objects: map[string]string{}}
	return New(store, storage, testKey), store, storage
}

func validRequest() RegisterRequest {
	return RegisterRequest{
		UserID:                "u1",
		Name:                  "Asha Verma",
		Email:                 "asha@example.com",
		Phone:                 "+919876543210",
		InsurancePolicyNumber: "POL-123",
		IdentificationType:    "Passport",
		IdentificationNumber:  "X1234567",
		TreatmentConsent:      true,
		PrivacyConsent:        true,
	}
}

func TestRegister_WithDocument(t *testing.T) {
	svc, _, storage := newTestService()

	p, err := svc.Register(context.Background(), validRequest(), &Document{
		Filename:    "passport.PNG",
		ContentType: "image/png",
		Size:        4,
		Body:        strings.NewReader("data"),
	})
	require.NoError(t, err)

	require.True(t, strings.HasSuffix(p.IdentificationDocumentID, ".png"))
	require.Equal(t, "data", storage.objects[p.IdentificationDocumentID])
	require.Equal(t,
		"https://files.example.com/storage/buckets/docs/files/"+p.IdentificationDocumentID+"/view?project=proj",
		p.IdentificationDocumentURL)

	require.NotEqual(t, "X1234567", p.IdentificationNumber)
	plain, err := crypto.Decrypt(testKey, p.IdentificationNumber)
	require.NoError(t, err)
	require.Equal(t, "X1234567", plain)

	plain, err = crypto.Decrypt(testKey, p.InsurancePolicyNumber)
	require.NoError(t, err)
	require.Equal(t, "POL-123", plain)
}

func TestRegister_WithoutDocument(t *testing.T) {
	svc, _, storage := newTestService()

	p, err := svc.Register(context.Background(), validRequest(), nil)
	require.NoError(t, err)
	require.Empty(t, p.IdentificationDocumentID)
	require.Empty(t, p.IdentificationDocumentURL)
	require.Empty(t, storage.objects)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterRequest)
		want   error
	}{
		{"missing user", func(r *RegisterRequest) { r.UserID = "" }, ErrInvalidInput},
		{"missing name", func(r *RegisterRequest) { r.Name = " " }, ErrInvalidInput},
		{"no treatment consent", func(r *RegisterRequest) { r.TreatmentConsent = false }, ErrConsentRequired},
		{"no privacy consent", func(r *RegisterRequest) { r.PrivacyConsent = false }, ErrConsentRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService()
			req := validRequest()
			tt.mutate(&req)
			if _, err := svc.Register(context.Background(), req, nil); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRegister_InsertFailureRemovesUpload(t *testing.T) {
	svc, store, storage := newTestService()
	store.createErr = errors.New("mongo down")

	_, err := svc.Register(context.Background(), validRequest(), &Document{
		Filename: "id.pdf",
		Body:     strings.NewReader("pdf"),
	})
	require.Error(t, err)
	require.Len(t, storage.deleted, 1)
	require.Empty(t, storage.objects)
}

func TestRegister_Duplicate(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Register(context.Background(), validRequest(), nil)
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), validRequest(), nil)
	require.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestGetByUserID(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.GetByUserID(context.Background(), "u1")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Register(context.Background(), validRequest(), nil)
	require.NoError(t, err)

	p, err := svc.GetByUserID(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, "Asha Verma", p.Name)
}

func TestDocumentURL(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()

	_, err := svc.DocumentURL(ctx, "u1")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Register(ctx, validRequest(), nil)
	require.NoError(t, err)
	_, err = svc.DocumentURL(ctx, "u1")
	require.ErrorIs(t, err, ErrNoDocument)

	delete(store.byUser, "u1")
	p, err := svc.Register(ctx, validRequest(), &Document{Filename: "id.jpg", Body: strings.NewReader("img")})
	require.NoError(t, err)

	url, err := svc.DocumentURL(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "https://files.example.com/signed/"+p.IdentificationDocumentID, url)
}
