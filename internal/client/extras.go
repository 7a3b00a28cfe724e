package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	apperrors "spendly/internal/errors"
	"spendly/internal/models"
)

// UploadReceipt sends a receipt image as the multipart field "image" and
// returns the server's confirmation message.
func (c *Client) UploadReceipt(ctx context.Context, filename string, image io.Reader) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filepath.Base(filename))
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrTransport, fmt.Errorf("creating form file: %w", err))
	}
	if _, err := io.Copy(part, image); err != nil {
		return "", apperrors.Wrap(apperrors.ErrTransport, fmt.Errorf("reading receipt image: %w", err))
	}
	if err := w.Close(); err != nil {
		return "", apperrors.Wrap(apperrors.ErrTransport, fmt.Errorf("closing multipart body: %w", err))
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/transactions/upload-receipt/", &buf, w.FormDataContentType())
	if err != nil {
		return "", err
	}

	var out struct {
		Message string `json:"message"`
	}
	if err := c.send(req, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Ask sends a natural language question about the user's spendings to the
// assistant and returns its answer.
func (c *Client) Ask(ctx context.Context, prompt string) (string, error) {
	in := struct {
		Prompt string `json:"prompt"`
	}{Prompt: prompt}
	var out struct {
		Result string `json:"result"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/transactions/gpt-query/", in, &out); err != nil {
		return "", err
	}
	return out.Result, nil
}

type keyResponse struct {
	Key string `json:"key"`
}

// Login exchanges credentials for a token and stores it in the client's session.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	in := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password}

	var out keyResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login/", in, &out); err != nil {
		return "", err
	}
	c.session.SetToken(out.Key)
	return out.Key, nil
}

// Register creates an account, stores the issued token in the client's
// session and returns it.
func (c *Client) Register(ctx context.Context, reg models.Registration) (string, error) {
	var out keyResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/registration/", reg, &out); err != nil {
		return "", err
	}
	c.session.SetToken(out.Key)
	return out.Key, nil
}
