package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/okr-bot/backend/internal/application/usecase/keyresult"
	"github.com/okr-bot/backend/internal/application/usecase/objective"
	"github.com/okr-bot/backend/internal/integration/entrypoint/dto"
	"github.com/okr-bot/backend/internal/integration/persistence/memory"
)

func TestGet_UnknownIDCarriesErrorCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	storage := memory.NewStorage()

	objectives := NewObjectiveController(ObjectiveUseCases{
		Get: objective.NewGetObjectiveUseCase(storage),
	})
	keyResults := NewKeyResultController(KeyResultUseCases{
		Get: keyresult.NewGetKeyResultUseCase(storage),
	})

	engine := gin.New()
	engine.GET("/objectives/:id", objectives.Get)
	engine.GET("/key-results/:id", keyResults.Get)

	tests := []struct {
		name     string
		path     string
		wantCode string
	}{
		{name: "objective", path: "/objectives/6f1c2a8e-0000-4000-8000-000000000000", wantCode: "OBJ-010001"},
		{name: "key result", path: "/key-results/6f1c2a8e-0000-4000-8000-000000000000", wantCode: "KRS-010001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != http.StatusNotFound {
				t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
			}
			var body dto.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body.Code != tt.wantCode {
				t.Errorf("expected code %s, got %q", tt.wantCode, body.Code)
			}
			if body.Error == "" {
				t.Error("expected an error message")
			}
		})
	}
}

func TestGet_MalformedID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	objectives := NewObjectiveController(ObjectiveUseCases{
		Get: objective.NewGetObjectiveUseCase(memory.NewStorage()),
	})

	engine := gin.New()
	engine.GET("/objectives/:id", objectives.Get)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/objectives/not-a-uuid", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
