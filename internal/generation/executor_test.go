package generation_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"reelforge/internal/config"
	"reelforge/internal/generation"
	"reelforge/internal/model"
	"reelforge/internal/provider"
)

// testSetup wires a store, registry, executor and orchestrator with fast,
// deterministic execution. randValue is compared against FailureRate.
func testSetup(t *testing.T, failureRate, randValue float64) (*generation.Orchestrator, *generation.RecordStore, *generation.Executor) {
	t.Helper()

	store := generation.NewRecordStore()
	reg := provider.NewRegistry(config.Config{
		OpenAIKey: "sk-test",
		RunwayKey: "rw-test",
	})
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	exec := generation.NewExecutor(store, reg, logger, generation.ExecutorConfig{
		WorkScale:   1000,
		MaxWork:     20 * time.Millisecond,
		FailureRate: failureRate,
		Rand:        func() float64 { return randValue },
	})
	orch := generation.NewOrchestrator(store, reg, exec, logger)
	return orch, store, exec
}

func imageRequest() generation.Request {
	return generation.Request{
		Type:     model.TypeImage,
		Provider: model.ProviderOpenAI,
		Prompt:   "a lighthouse at dusk",
	}
}

// waitForStatus polls the store until the generation reaches the expected status.
func waitForStatus(t *testing.T, s *generation.RecordStore, id, expected string, timeout time.Duration) *model.Generation {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		g, err := s.Get(id)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if g.Status == expected {
			return g
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("generation %s did not reach status %q within %v", id, expected, timeout)
	return nil
}

func TestExecutionCompletes(t *testing.T) {
	orch, store, exec := testSetup(t, 0, 0)

	g, err := orch.Submit(context.Background(), imageRequest())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if g.Status != model.StatusQueued {
		t.Errorf("returned status = %q, want queued", g.Status)
	}

	done := waitForStatus(t, store, g.ID, model.StatusCompleted, 2*time.Second)
	exec.Wait()

	if done.ResultURL == "" {
		t.Error("completed generation has no result_url")
	}
	if !strings.HasSuffix(done.ResultURL, g.ID+".png") {
		t.Errorf("result_url = %q, want suffix %s.png", done.ResultURL, g.ID)
	}
	if done.ErrorMessage != "" {
		t.Errorf("completed generation has error_message %q", done.ErrorMessage)
	}
}

func TestExecutionResultExtensionByType(t *testing.T) {
	orch, store, exec := testSetup(t, 0, 0)

	tests := []struct {
		req generation.Request
		ext string
	}{
		{generation.Request{Type: model.TypeImage, Provider: model.ProviderOpenAI, Prompt: "p"}, ".png"},
		{generation.Request{Type: model.TypeText, Provider: model.ProviderOpenAI, Prompt: "p"}, ".txt"},
		{generation.Request{Type: model.TypeVideo, Provider: model.ProviderRunway, Prompt: "p"}, ".mp4"},
		{generation.Request{Type: model.TypeVideo, Provider: model.ProviderVeo3, Prompt: "p"}, ".mp4"},
	}
	for _, tt := range tests {
		g, err := orch.Submit(context.Background(), tt.req)
		if err != nil {
			t.Fatalf("Submit(%s/%s): %v", tt.req.Type, tt.req.Provider, err)
		}
		done := waitForStatus(t, store, g.ID, model.StatusCompleted, 2*time.Second)
		if !strings.HasSuffix(done.ResultURL, tt.ext) {
			t.Errorf("result_url for %s = %q, want suffix %s", tt.req.Type, done.ResultURL, tt.ext)
		}
	}
	exec.Wait()
}

func TestExecutionFailureInjection(t *testing.T) {
	// randValue 0.05 < FailureRate 0.1 forces the failure path.
	orch, store, exec := testSetup(t, 0.1, 0.05)

	g, err := orch.Submit(context.Background(), imageRequest())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	failed := waitForStatus(t, store, g.ID, model.StatusFailed, 2*time.Second)
	exec.Wait()

	if failed.ErrorMessage == "" {
		t.Error("failed generation has no error_message")
	}
	if failed.ResultURL != "" {
		t.Errorf("failed generation has result_url %q", failed.ResultURL)
	}
}

func TestExecutionFailureInjectionDisabledByDefault(t *testing.T) {
	// randValue 0 would fail any positive rate; rate 0 must never fail.
	orch, store, exec := testSetup(t, 0, 0)

	g, err := orch.Submit(context.Background(), imageRequest())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	waitForStatus(t, store, g.ID, model.StatusCompleted, 2*time.Second)
	exec.Wait()
}

func TestCancelBeforeExecutionWins(t *testing.T) {
	store := generation.NewRecordStore()
	reg := provider.NewRegistry(config.Config{OpenAIKey: "sk-test"})
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	exec := generation.NewExecutor(store, reg, logger, generation.ExecutorConfig{
		WorkScale: 1000,
		MaxWork:   time.Millisecond,
	})

	// Insert and cancel before dispatching, so the executor finds a
	// terminal record when it tries to start.
	g := makeRecord(model.StatusQueued)
	if err := store.Insert(g); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := store.Cancel(g.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	exec.Dispatch(g)
	exec.Wait()

	got, _ := store.Get(g.ID)
	if got.Status != model.StatusCancelled {
		t.Errorf("status = %q, want cancelled", got.Status)
	}
	if got.ResultURL != "" || got.ErrorMessage != "" {
		t.Errorf("cancelled record has result/error set: %+v", got)
	}
}

func TestCancelDuringExecutionWins(t *testing.T) {
	store := generation.NewRecordStore()
	reg := provider.NewRegistry(config.Config{OpenAIKey: "sk-test"})
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	exec := generation.NewExecutor(store, reg, logger, generation.ExecutorConfig{
		WorkScale: 1, // image estimate 30s / 1, capped at 50ms
		MaxWork:   50 * time.Millisecond,
	})
	orch := generation.NewOrchestrator(store, reg, exec, logger)

	g, err := orch.Submit(context.Background(), imageRequest())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// Wait until the executor is mid-flight, then cancel.
	waitForStatus(t, store, g.ID, model.StatusProcessing, 2*time.Second)
	if err := orch.Cancel(g.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	exec.Wait()

	got, _ := store.Get(g.ID)
	if got.Status != model.StatusCancelled {
		t.Errorf("final status = %q, want cancelled", got.Status)
	}
	if got.ResultURL != "" || got.ErrorMessage != "" {
		t.Errorf("late executor write resurrected cancelled record: %+v", got)
	}
}
