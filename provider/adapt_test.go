package provider

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type toolArgs struct {
	Args []string
}

type toolOutput struct {
	Stdout string
}

type ocrRequest struct {
	ImagePath string
	Language  string
}

type ocrResult struct {
	Text string
}

type stubTool struct {
	name      string
	available bool
	execFn    func(ctx context.Context, in toolArgs) (toolOutput, error)
}

func (s *stubTool) Name() string                       { return s.name }
func (s *stubTool) IsAvailable(_ context.Context) bool { return s.available }
func (s *stubTool) Execute(ctx context.Context, in toolArgs) (toolOutput, error) {
	return s.execFn(ctx, in)
}

func toArgs(_ context.Context, in ocrRequest) (toolArgs, error) {
	if in.ImagePath == "" {
		return toolArgs{}, errors.New("image path required")
	}
	return toolArgs{Args: []string{in.ImagePath, "stdout", "-l", in.Language}}, nil
}

func toResult(out toolOutput) (ocrResult, error) {
	return ocrResult{Text: strings.TrimSpace(out.Stdout)}, nil
}

func echoArgsTool() *stubTool {
	return &stubTool{
		name:      "tesseract",
		available: true,
		execFn: func(_ context.Context, in toolArgs) (toolOutput, error) {
			return toolOutput{Stdout: strings.Join(in.Args, " ") + "\n"}, nil
		},
	}
}

func TestAdapt_MapsInputAndOutput(t *testing.T) {
	adapted := Adapt[ocrRequest, ocrResult, toolArgs, toolOutput](echoArgsTool(), "ocr", toArgs, toResult)

	if adapted.Name() != "ocr" {
		t.Fatalf("expected name 'ocr', got %q", adapted.Name())
	}
	got, err := adapted.Execute(context.Background(), ocrRequest{ImagePath: "/tmp/a.png", Language: "eng"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Text != "/tmp/a.png stdout -l eng" {
		t.Fatalf("unexpected text %q", got.Text)
	}
}

func TestAdapt_MapInErrorSkipsBackend(t *testing.T) {
	called := false
	tool := echoArgsTool()
	tool.execFn = func(_ context.Context, _ toolArgs) (toolOutput, error) {
		called = true
		return toolOutput{}, nil
	}
	adapted := Adapt[ocrRequest, ocrResult, toolArgs, toolOutput](tool, "ocr", toArgs, toResult)

	if _, err := adapted.Execute(context.Background(), ocrRequest{}); err == nil {
		t.Fatal("expected mapIn error")
	}
	if called {
		t.Fatal("backend should not run when mapIn fails")
	}
}

func TestAdapt_MapOutError(t *testing.T) {
	adapted := Adapt[ocrRequest, ocrResult, toolArgs, toolOutput](echoArgsTool(), "ocr", toArgs,
		func(toolOutput) (ocrResult, error) { return ocrResult{}, errors.New("bad output") })

	_, err := adapted.Execute(context.Background(), ocrRequest{ImagePath: "x.png", Language: "eng"})
	if err == nil || err.Error() != "bad output" {
		t.Fatalf("expected mapOut error, got %v", err)
	}
}

func TestAdapt_BackendErrorPassesThrough(t *testing.T) {
	boom := errors.New("tool crashed")
	tool := echoArgsTool()
	tool.execFn = func(_ context.Context, _ toolArgs) (toolOutput, error) { return toolOutput{}, boom }
	adapted := Adapt[ocrRequest, ocrResult, toolArgs, toolOutput](tool, "ocr", toArgs, toResult)

	_, err := adapted.Execute(context.Background(), ocrRequest{ImagePath: "x.png", Language: "eng"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected backend error, got %v", err)
	}
}

func TestAdapt_IsAvailableDelegates(t *testing.T) {
	tool := echoArgsTool()
	adapted := Adapt[ocrRequest, ocrResult, toolArgs, toolOutput](tool, "ocr", toArgs, toResult)
	if !adapted.IsAvailable(context.Background()) {
		t.Fatal("expected available")
	}
	tool.available = false
	if adapted.IsAvailable(context.Background()) {
		t.Fatal("expected unavailable after backend goes away")
	}
}

func TestAdapt_ComposesWithResilience(t *testing.T) {
	calls := 0
	tool := echoArgsTool()
	tool.execFn = func(_ context.Context, in toolArgs) (toolOutput, error) {
		calls++
		return toolOutput{Stdout: in.Args[0]}, nil
	}

	resilient := WithResilience[toolArgs, toolOutput](tool, ResilienceConfig{})
	adapted := Adapt[ocrRequest, ocrResult, toolArgs, toolOutput](resilient, "composed", toArgs, toResult)

	got, err := adapted.Execute(context.Background(), ocrRequest{ImagePath: "img.png", Language: "eng"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Text != "img.png" || calls != 1 {
		t.Fatalf("got %q after %d calls", got.Text, calls)
	}
}
