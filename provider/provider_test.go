package provider

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// testProvider implements the Provider interface for testing.
type testProvider struct {
	name      string
	available bool
}

func (p *testProvider) Name() string                        { return p.name }
func (p *testProvider) IsAvailable(ctx context.Context) bool { return p.available }

func backend(name string, available bool) Factory[*testProvider] {
	return func() (*testProvider, error) { return &testProvider{name: name, available: available}, nil }
}

func TestRegistryCreate(t *testing.T) {
	reg := NewRegistry[*testProvider]()
	reg.Register("espeak", backend("espeak", true))
	reg.Register("say", backend("say", true))

	p, err := reg.Create("espeak")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if p.Name() != "espeak" {
		t.Errorf("Name = %q", p.Name())
	}
	if got := reg.Names(); len(got) != 2 || got[0] != "espeak" || got[1] != "say" {
		t.Errorf("Names = %v, want sorted [espeak say]", got)
	}
}

func TestRegistryCreateUnknownListsKnown(t *testing.T) {
	reg := NewRegistry[*testProvider]()
	reg.Register("scrot", backend("scrot", true))
	reg.Register("gnome-screenshot", backend("gnome-screenshot", true))

	_, err := reg.Create("screencap")
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if !strings.Contains(err.Error(), `unknown backend "screencap"`) || !strings.Contains(err.Error(), "gnome-screenshot, scrot") {
		t.Errorf("error = %q", err)
	}
}

func TestRegistryFactoryError(t *testing.T) {
	reg := NewRegistry[*testProvider]()
	reg.Register("broken", func() (*testProvider, error) { return nil, errors.New("no binary") })
	if _, err := reg.Create("broken"); err == nil || err.Error() != "no binary" {
		t.Errorf("err = %v", err)
	}
}

func TestPrioritySelector(t *testing.T) {
	ctx := context.Background()
	providers := map[string]*testProvider{
		"gosseract": {name: "gosseract", available: false},
		"tesseract": {name: "tesseract", available: true},
		"other":     {name: "other", available: true},
	}

	sel := &PrioritySelector[*testProvider]{
		Priority: []string{"gosseract", "tesseract", "other"},
	}

	p, err := sel.Select(ctx, providers)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if p.Name() != "tesseract" {
		t.Errorf("expected 'tesseract' (first available), got %q", p.Name())
	}
}

func TestPrioritySelectorNoneAvailable(t *testing.T) {
	ctx := context.Background()
	providers := map[string]*testProvider{
		"a": {name: "a", available: false},
	}

	sel := &PrioritySelector[*testProvider]{Priority: []string{"a"}}
	_, err := sel.Select(ctx, providers)
	if err == nil {
		t.Error("expected error when no provider is available")
	}
}

func TestManager(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(NewRegistry[*testProvider](), &PrioritySelector[*testProvider]{Priority: []string{"gosseract", "tesseract"}})
	mgr.Register("gosseract", backend("gosseract", false))
	mgr.Register("tesseract", backend("tesseract", true))

	for _, name := range []string{"gosseract", "tesseract"} {
		if err := mgr.Initialize(ctx, name); err != nil {
			t.Fatalf("Initialize(%q): %v", name, err)
		}
	}

	p, err := mgr.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if p.Name() != "tesseract" {
		t.Errorf("Get = %q, want the first available", p.Name())
	}

	if p, err := mgr.GetByName("gosseract"); err != nil || p.Name() != "gosseract" {
		t.Errorf("GetByName = %v, %v", p, err)
	}
	if _, err := mgr.GetByName("missing"); err == nil {
		t.Error("expected error for a backend that was never initialized")
	}
	if got := mgr.Available(); len(got) != 2 || got[0] != "gosseract" {
		t.Errorf("Available = %v", got)
	}
}

func TestManagerInitializeUnregistered(t *testing.T) {
	mgr := NewManager(NewRegistry[*testProvider](), &PrioritySelector[*testProvider]{})
	if err := mgr.Initialize(context.Background(), "unregistered"); err == nil {
		t.Error("expected error for initializing an unregistered backend")
	}
}

type initProvider struct {
	testProvider
	initErr error
	inited  bool
}

func (p *initProvider) Init(context.Context) error {
	p.inited = true
	return p.initErr
}

func TestManagerRunsInit(t *testing.T) {
	inst := &initProvider{testProvider: testProvider{name: "ocr", available: true}}
	mgr := NewManager(NewRegistry[*initProvider](), &PrioritySelector[*initProvider]{Priority: []string{"ocr"}})
	mgr.Register("ocr", func() (*initProvider, error) { return inst, nil })

	if err := mgr.Initialize(context.Background(), "ocr"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if !inst.inited {
		t.Error("expected Init to be called")
	}
}

func TestManagerInitFailure(t *testing.T) {
	inst := &initProvider{testProvider: testProvider{name: "ocr"}, initErr: errors.New("no tessdata")}
	mgr := NewManager(NewRegistry[*initProvider](), &PrioritySelector[*initProvider]{})
	mgr.Register("ocr", func() (*initProvider, error) { return inst, nil })

	err := mgr.Initialize(context.Background(), "ocr")
	if err == nil || !strings.Contains(err.Error(), "no tessdata") {
		t.Fatalf("expected init error, got %v", err)
	}
	if _, err := mgr.GetByName("ocr"); err == nil {
		t.Error("failed backend must not be kept")
	}
}

func TestFunc(t *testing.T) {
	f := NewFunc("upper", func(_ context.Context, in string) (string, error) {
		return strings.ToUpper(in), nil
	})
	if f.Name() != "upper" {
		t.Errorf("Name = %q", f.Name())
	}
	if !f.IsAvailable(context.Background()) {
		t.Error("nil Available should mean available")
	}
	got, err := f.Execute(context.Background(), "bonjour")
	if err != nil || got != "BONJOUR" {
		t.Fatalf("Execute = %q, %v", got, err)
	}

	f.Available = func(context.Context) bool { return false }
	if f.IsAvailable(context.Background()) {
		t.Error("expected Available to be consulted")
	}
}
