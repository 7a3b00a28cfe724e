package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "spendly/internal/errors"
	"spendly/internal/models"
)

type mockReceiptService struct {
	saveReceiptFn func(userID uint, filename string, image io.Reader) (*models.Receipt, error)
}

func (m *mockReceiptService) SaveReceipt(userID uint, filename string, image io.Reader) (*models.Receipt, error) {
	if m.saveReceiptFn != nil {
		return m.saveReceiptFn(userID, filename, image)
	}
	return &models.Receipt{UserID: userID, Image: "receipts/" + filename}, nil
}

func setupReceiptRouter(handler *ReceiptHandler) *gin.Engine {
	r := gin.New()
	r.POST("/transactions/upload-receipt/", injectUserID(1), handler.UploadReceipt)
	return r
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest("POST", "/transactions/upload-receipt/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestReceiptHandler_UploadReceipt(t *testing.T) {
	t.Run("returns 201 with message", func(t *testing.T) {
		var gotName string
		var gotBody []byte
		svc := &mockReceiptService{
			saveReceiptFn: func(_ uint, filename string, image io.Reader) (*models.Receipt, error) {
				gotName = filename
				gotBody, _ = io.ReadAll(image)
				return &models.Receipt{}, nil
			},
		}
		r := setupReceiptRouter(NewReceiptHandler(svc))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, multipartRequest(t, "image", "shop.png", []byte("png bytes")))

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if parseJSON(t, rec)["message"] != "Receipt uploaded successfully." {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
		if gotName != "shop.png" || string(gotBody) != "png bytes" {
			t.Errorf("service got %q / %q", gotName, gotBody)
		}
	})

	t.Run("missing image field", func(t *testing.T) {
		r := setupReceiptRouter(NewReceiptHandler(&mockReceiptService{}))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, multipartRequest(t, "file", "shop.png", []byte("x")))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertFieldError(t, parseJSON(t, rec), "image", "No file was submitted.")
	})

	t.Run("service rejection is passed through", func(t *testing.T) {
		svc := &mockReceiptService{
			saveReceiptFn: func(uint, string, io.Reader) (*models.Receipt, error) {
				return nil, apperrors.WithFields(apperrors.ErrValidation, apperrors.Field("image", "Upload a valid image."))
			},
		}
		r := setupReceiptRouter(NewReceiptHandler(svc))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, multipartRequest(t, "image", "notes.txt", []byte("hello")))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertFieldError(t, parseJSON(t, rec), "image", "Upload a valid image.")
	})
}
