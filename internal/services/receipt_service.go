package services

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	apperrors "spendly/internal/errors"
	"spendly/internal/logger"
	"spendly/internal/models"
	"spendly/internal/uuid"
)

const receiptSubdir = "receipts"

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// receiptService stores receipt images on disk and records them.
type receiptService struct {
	db  *gorm.DB
	dir string
}

// NewReceiptService creates a ReceiptServicer writing under dir.
func NewReceiptService(db *gorm.DB, dir string) ReceiptServicer {
	return &receiptService{db: db, dir: dir}
}

// SaveReceipt sniffs the upload, writes it under a UUIDv7 file name and
// records a Receipt row. Non-image uploads are rejected.
func (s *receiptService) SaveReceipt(userID uint, filename string, image io.Reader) (*models.Receipt, error) {
	br := bufio.NewReader(image)
	head, err := br.Peek(512)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	ext, ok := imageExtensions[http.DetectContentType(head)]
	if !ok || len(head) == 0 {
		return nil, apperrors.WithFields(apperrors.ErrValidation,
			apperrors.Field("image", "Upload a valid image. The file you uploaded was either not an image or a corrupted image."),
		)
	}

	dir := filepath.Join(s.dir, receiptSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("creating receipt dir: %w", err))
	}
	name := uuid.New() + ext
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("creating receipt file: %w", err))
	}
	written, err := io.Copy(f, br)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("writing receipt: %w", err))
	}

	receipt := &models.Receipt{UserID: userID, Image: receiptSubdir + "/" + name}
	if err := s.db.Create(receipt).Error; err != nil {
		_ = os.Remove(path)
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("receipt stored",
		"user_id", userID,
		"original_name", strings.TrimSpace(filepath.Base(filename)),
		"image", receipt.Image,
		"bytes", written,
	)
	return receipt, nil
}
