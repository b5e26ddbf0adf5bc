package provider

import (
	"context"
	"fmt"
	"strings"
)

// Selector chooses the backend a Manager calls.
type Selector[T Provider] interface {
	Select(ctx context.Context, providers map[string]T) (T, error)
}

// PrioritySelector returns the first registered backend in Priority that
// reports itself available. OCR uses it to prefer the in-process engine and
// fall back to the tesseract binary.
type PrioritySelector[T Provider] struct {
	Priority []string
}

// Select implements Selector.
func (s *PrioritySelector[T]) Select(ctx context.Context, providers map[string]T) (T, error) {
	var zero T
	for _, name := range s.Priority {
		p, ok := providers[name]
		if ok && p.IsAvailable(ctx) {
			return p, nil
		}
	}
	return zero, fmt.Errorf("none of [%s] is available", strings.Join(s.Priority, ", "))
}
