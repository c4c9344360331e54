package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rcastro/tutormatch/internal/app/models/dto"
	"github.com/rcastro/tutormatch/internal/app/services"
)

var _ services.StorageService = (*mockStorageService)(nil)

type mockStorageService struct {
	uploadAvatarFn        func(ctx context.Context, userID, originalName, customName string, content []byte) (*dto.FileUploadResponse, error)
	deleteAvatarFn        func(ctx context.Context, userID, fileName string) error
	uploadPaymentProofFn  func(ctx context.Context, userID, originalName, customName string, content []byte) (*dto.FileUploadResponse, error)
	uploadTutoringImageFn func(ctx context.Context, tutoringID, originalName, customName string, content []byte) (*dto.FileUploadResponse, error)
}

func (m *mockStorageService) UploadAvatar(ctx context.Context, userID, originalName, customName string, content []byte) (*dto.FileUploadResponse, error) {
	if m.uploadAvatarFn != nil {
		return m.uploadAvatarFn(ctx, userID, originalName, customName, content)
	}
	return &dto.FileUploadResponse{Name: originalName, Bucket: services.BucketAvatars}, nil
}

func (m *mockStorageService) GetAvatarURL(userID, fileName string) string {
	return "http://localhost/files/avatars/" + userID + "/" + fileName
}

func (m *mockStorageService) DeleteAvatar(ctx context.Context, userID, fileName string) error {
	if m.deleteAvatarFn != nil {
		return m.deleteAvatarFn(ctx, userID, fileName)
	}
	return nil
}

func (m *mockStorageService) UploadPaymentProof(ctx context.Context, userID, originalName, customName string, content []byte) (*dto.FileUploadResponse, error) {
	if m.uploadPaymentProofFn != nil {
		return m.uploadPaymentProofFn(ctx, userID, originalName, customName, content)
	}
	return &dto.FileUploadResponse{Name: originalName, Bucket: services.BucketPaymentProofs}, nil
}

func (m *mockStorageService) GetPaymentProofURL(userID, fileName string) string {
	return "payment-proofs/" + userID + "/" + fileName
}

func (m *mockStorageService) DeletePaymentProof(ctx context.Context, userID, fileName string) error {
	return nil
}

func (m *mockStorageService) UploadTutoringImage(ctx context.Context, tutoringID, originalName, customName string, content []byte) (*dto.FileUploadResponse, error) {
	if m.uploadTutoringImageFn != nil {
		return m.uploadTutoringImageFn(ctx, tutoringID, originalName, customName, content)
	}
	return &dto.FileUploadResponse{Name: originalName, Bucket: services.BucketTutoringImages}, nil
}

func (m *mockStorageService) GetTutoringImageURL(tutoringID, fileName string) string {
	return "http://localhost/files/tutoring-images/" + tutoringID + "/" + fileName
}

func (m *mockStorageService) DeleteTutoringImage(ctx context.Context, tutoringID, fileName string) error {
	return nil
}

// multipartBody builds a form with a file part plus plain fields.
func multipartBody(t *testing.T, filename, mimeType string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", mimeType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatal(err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	return body, writer.FormDataContentType()
}

func newStorageTestRouter(svc services.StorageService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewStorageController(svc)
	router.POST("/storage/avatars", controller.UploadAvatar)
	router.GET("/storage/avatars/:userId/:fileName", controller.GetAvatarURL)
	router.DELETE("/storage/avatars/:userId/:fileName", controller.DeleteAvatar)
	router.POST("/storage/payment-proofs", controller.UploadPaymentProof)
	router.POST("/storage/tutoring-images", controller.UploadTutoringImage)
	return router
}

func TestUploadAvatarPassesOwnerAndContent(t *testing.T) {
	var gotOwner, gotName, gotCustom string
	var gotContent []byte
	svc := &mockStorageService{
		uploadAvatarFn: func(ctx context.Context, userID, originalName, customName string, content []byte) (*dto.FileUploadResponse, error) {
			gotOwner, gotName, gotCustom, gotContent = userID, originalName, customName, content
			return &dto.FileUploadResponse{Name: originalName, Bucket: services.BucketAvatars}, nil
		},
	}
	router := newStorageTestRouter(svc)

	body, contentType := multipartBody(t, "me.png", "image/png", []byte("fake image"), map[string]string{
		"userId":   "user-1",
		"fileName": "custom.png",
	})
	req := httptest.NewRequest(http.MethodPost, "/storage/avatars", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if gotOwner != "user-1" {
		t.Errorf("expected owner from the userId field, got %q", gotOwner)
	}
	if gotName != "me.png" || gotCustom != "custom.png" || string(gotContent) != "fake image" {
		t.Errorf("unexpected upload: name=%q custom=%q content=%q", gotName, gotCustom, gotContent)
	}
}

func TestUploadRejectsMissingOwnerField(t *testing.T) {
	serviceCalled := false
	svc := &mockStorageService{
		uploadAvatarFn: func(ctx context.Context, userID, originalName, customName string, content []byte) (*dto.FileUploadResponse, error) {
			serviceCalled = true
			return nil, nil
		},
	}
	router := newStorageTestRouter(svc)

	body, contentType := multipartBody(t, "me.png", "image/png", []byte("fake image"), nil)
	req := httptest.NewRequest(http.MethodPost, "/storage/avatars", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if serviceCalled {
		t.Error("service must not be reached without an owner id")
	}
}

func TestUploadRejectsMissingFile(t *testing.T) {
	serviceCalled := false
	svc := &mockStorageService{
		uploadAvatarFn: func(ctx context.Context, userID, originalName, customName string, content []byte) (*dto.FileUploadResponse, error) {
			serviceCalled = true
			return nil, nil
		},
	}
	router := newStorageTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/storage/avatars", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if serviceCalled {
		t.Error("service must not be reached without a file")
	}
}

func TestUploadRejectsUnsupportedMimeType(t *testing.T) {
	serviceCalled := false
	svc := &mockStorageService{
		uploadAvatarFn: func(ctx context.Context, userID, originalName, customName string, content []byte) (*dto.FileUploadResponse, error) {
			serviceCalled = true
			return nil, nil
		},
	}
	router := newStorageTestRouter(svc)

	body, contentType := multipartBody(t, "notes.txt", "text/plain", []byte("hello"), map[string]string{"userId": "user-1"})
	req := httptest.NewRequest(http.MethodPost, "/storage/avatars", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if serviceCalled {
		t.Error("service must not be reached for an unsupported MIME type")
	}
}

func TestUploadAllowsPDFOnlyForPaymentProofs(t *testing.T) {
	svc := &mockStorageService{}
	router := newStorageTestRouter(svc)

	body, contentType := multipartBody(t, "receipt.pdf", "application/pdf", []byte("%PDF-fake"), map[string]string{"userId": "user-1"})
	req := httptest.NewRequest(http.MethodPost, "/storage/payment-proofs", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("payment proof PDF: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	body, contentType = multipartBody(t, "receipt.pdf", "application/pdf", []byte("%PDF-fake"), map[string]string{"userId": "user-1"})
	req = httptest.NewRequest(http.MethodPost, "/storage/avatars", body)
	req.Header.Set("Content-Type", contentType)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("avatar PDF: expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetAvatarURLReturnsURL(t *testing.T) {
	router := newStorageTestRouter(&mockStorageService{})

	req := httptest.NewRequest(http.MethodGet, "/storage/avatars/user-1/me.png", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data dto.FileURLResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.URL != "http://localhost/files/avatars/user-1/me.png" {
		t.Errorf("unexpected url %q", resp.Data.URL)
	}
}

func TestDeleteAvatarPassesOwnerAndName(t *testing.T) {
	var gotOwner, gotName string
	svc := &mockStorageService{
		deleteAvatarFn: func(ctx context.Context, userID, fileName string) error {
			gotOwner, gotName = userID, fileName
			return nil
		},
	}
	router := newStorageTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/storage/avatars/user-1/me.png", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if gotOwner != "user-1" || gotName != "me.png" {
		t.Errorf("unexpected delete target %q/%q", gotOwner, gotName)
	}
}
