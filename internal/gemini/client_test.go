package gemini

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"google.golang.org/genai"

	"github.com/edgard/dualcoach/internal/config"
	"github.com/edgard/dualcoach/internal/database"
	"github.com/edgard/dualcoach/internal/fitness"
	"github.com/edgard/dualcoach/internal/generator"
)

type fakeModels struct {
	responses []*genai.GenerateContentResponse
	errs      []error
	calls     int
	lastCfg   *genai.GenerateContentConfig
	lastText  string
}

func (f *fakeModels) GenerateContent(_ context.Context, _ string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	i := f.calls
	f.calls++
	f.lastCfg = cfg
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.lastText = contents[0].Parts[0].Text
	}
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if err != nil {
		return nil, err
	}
	return f.responses[min(i, len(f.responses)-1)], nil
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content:      genai.NewContentFromText(text, genai.RoleModel),
		FinishReason: genai.FinishReasonStop,
	}}}
}

func newTestClient(m models) *sdkClient {
	return newRetryingClient(m, config.Default().Gemini.MaxRetries)
}

func newRetryingClient(m models, maxRetries int) *sdkClient {
	cfg := config.Default().Gemini
	cfg.MaxRetries = maxRetries
	cfg.RetryDelay = 0
	return newClient(m, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func request() generator.Request {
	return generator.Request{
		Task: generator.TaskWorkout,
		Profile: &database.Profile{
			UserID: 1, Gender: fitness.GenderFemale, Age: 30, HeightCm: 165, WeightKg: 60,
			Measurements: fitness.Measurements{Chest: 90, Waist: 65, Hips: 95, Bicep: 28},
			FitnessLevel: fitness.LevelBeginner, Goal: fitness.GoalFitness,
			Location: fitness.LocationHome, WorkoutsPerWeek: 2,
		},
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()
	fake := &fakeModels{responses: []*genai.GenerateContentResponse{textResponse("  План готов  ")}}
	c := newTestClient(fake)

	got, err := c.Generate(context.Background(), request())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "План готов" {
		t.Errorf("Generate() = %q", got)
	}
	if fake.lastCfg.SystemInstruction == nil || !strings.Contains(fake.lastCfg.SystemInstruction.Parts[0].Text, "Дженет Лайог") {
		t.Error("system instruction does not carry the persona")
	}
	if !strings.Contains(fake.lastText, "4 недели") {
		t.Errorf("user turn = %q", fake.lastText)
	}
	if c.contentConfig.SystemInstruction != nil {
		t.Error("shared content config was mutated")
	}
}

func TestGenerateRetries(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		errs      []error
		wantCalls int
		wantErr   bool
	}{
		{"retriable then success", []error{genai.APIError{Code: 503}}, 2, false},
		{"retries exhausted", []error{genai.APIError{Code: 500}, genai.APIError{Code: 500}, genai.APIError{Code: 503}}, 3, true},
		{"client error not retried", []error{genai.APIError{Code: 400}}, 1, true},
		{"transport error not retried", []error{errors.New("connection reset")}, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fake := &fakeModels{errs: tt.errs, responses: []*genai.GenerateContentResponse{textResponse("ok")}}
			c := newRetryingClient(fake, 2)

			_, err := c.Generate(context.Background(), request())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Generate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if fake.calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", fake.calls, tt.wantCalls)
			}
		})
	}
}

func TestGenerateDefaultsToSingleAttempt(t *testing.T) {
	t.Parallel()
	unavailable := genai.APIError{Code: 503}
	fake := &fakeModels{errs: []error{unavailable, unavailable, unavailable}}
	c := newClient(fake, config.Default().Gemini, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if _, err := c.Generate(context.Background(), request()); err == nil {
		t.Fatal("Generate() succeeded, want the backend error")
	}
	if fake.calls != 1 {
		t.Errorf("backend calls = %d, want 1", fake.calls)
	}
}

func TestGenerateRejectsUnusableResponses(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{"blocked", &genai.GenerateContentResponse{PromptFeedback: &genai.GenerateContentResponsePromptFeedback{
			BlockReason: genai.BlockedReasonSafety,
		}}},
		{"no candidates", &genai.GenerateContentResponse{}},
		{"blank text", textResponse("   ")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newTestClient(&fakeModels{responses: []*genai.GenerateContentResponse{tt.resp}})
			if got, err := c.Generate(context.Background(), request()); err == nil {
				t.Errorf("Generate() = %q, want error", got)
			}
		})
	}
}

func TestGenerateInvalidRequest(t *testing.T) {
	t.Parallel()
	fake := &fakeModels{responses: []*genai.GenerateContentResponse{textResponse("ok")}}
	c := newTestClient(fake)

	if _, err := c.Generate(context.Background(), generator.Request{Task: generator.TaskChat}); err == nil {
		t.Fatal("Generate() without a profile should fail")
	}
	if fake.calls != 0 {
		t.Errorf("model called %d times for an invalid request", fake.calls)
	}
}
