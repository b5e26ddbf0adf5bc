package observability

import (
	"context"
	"testing"

	"github.com/kbukum/babelink/component"
)

func TestComponentDisabled(t *testing.T) {
	c := NewComponent(Config{}, "babelink", "test")
	if err := c.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if h := c.Health(context.Background()); h.Status != component.StatusHealthy || h.Name != "telemetry" {
		t.Errorf("health = %+v", h)
	}
	if d := c.Describe(); d.Details != "disabled" || d.Type != "telemetry" {
		t.Errorf("describe = %+v", d)
	}
	if err := c.Stop(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := c.Stop(context.Background()); err != nil {
		t.Errorf("second Stop: %v", err)
	}
}

func TestComponentDescribeEnabled(t *testing.T) {
	c := NewComponent(Config{Enabled: true, Endpoint: "collector:4318"}, "babelink", "test")
	if d := c.Describe(); d.Details != "otlp/http collector:4318 sample=1.00" {
		t.Errorf("details = %q", d.Details)
	}
}
