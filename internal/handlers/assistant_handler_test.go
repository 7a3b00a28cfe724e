package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

type mockAssistant struct {
	answerFn func(ctx context.Context, userID uint, prompt string) (string, error)
}

func (m *mockAssistant) Answer(ctx context.Context, userID uint, prompt string) (string, error) {
	return m.answerFn(ctx, userID, prompt)
}

func setupAssistantRouter(handler *AssistantHandler) *gin.Engine {
	r := gin.New()
	r.POST("/transactions/gpt-query/", injectUserID(1), handler.Query)
	return r
}

func TestAssistantHandler_Query(t *testing.T) {
	t.Run("returns the answer", func(t *testing.T) {
		a := &mockAssistant{answerFn: func(_ context.Context, userID uint, prompt string) (string, error) {
			return prompt + " answered", nil
		}}
		r := setupAssistantRouter(NewAssistantHandler(a))

		rec := doRequest(r, "POST", "/transactions/gpt-query/", `{"prompt":"food?"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if parseJSON(t, rec)["result"] != "food? answered" {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
	})

	t.Run("not configured", func(t *testing.T) {
		r := setupAssistantRouter(NewAssistantHandler(nil))

		rec := doRequest(r, "POST", "/transactions/gpt-query/", `{"prompt":"food?"}`)

		if rec.Code != http.StatusNotImplemented {
			t.Fatalf("expected 501, got %d", rec.Code)
		}
		if rec.Body.String() != `{"error":"Assistant is not configured."}` {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
	})

	t.Run("missing prompt", func(t *testing.T) {
		r := setupAssistantRouter(NewAssistantHandler(nil))

		rec := doRequest(r, "POST", "/transactions/gpt-query/", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertFieldError(t, parseJSON(t, rec), "prompt", "This field is required.")
	})

	t.Run("assistant failure is internal", func(t *testing.T) {
		a := &mockAssistant{answerFn: func(context.Context, uint, string) (string, error) {
			return "", errors.New("boom")
		}}
		r := setupAssistantRouter(NewAssistantHandler(a))

		rec := doRequest(r, "POST", "/transactions/gpt-query/", `{"prompt":"x"}`)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INTERNAL_ERROR")
	})
}
