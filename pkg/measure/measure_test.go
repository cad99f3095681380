package measure

import (
	"context"
	"sync"
	"testing"

	"github.com/matzehuels/anchor/pkg/errors"
	"github.com/matzehuels/anchor/pkg/geom"
)

func TestStaticMeasure(t *testing.T) {
	ctx := context.Background()
	s := NewStatic(geom.NewRect(0, 0, 800, 600))
	s.Set("trigger", geom.NewRect(10, 20, 30, 40))

	got, err := s.Measure(ctx, "trigger")
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}
	if got != geom.NewRect(10, 20, 30, 40) {
		t.Errorf("Measure() = %v, want 10,20 30x40", got)
	}

	s.Delete("trigger")
	if _, err := s.Measure(ctx, "trigger"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Measure() after Delete error = %v, want %v", err, errors.ErrCodeNotFound)
	}
}

func TestStaticViewport(t *testing.T) {
	ctx := context.Background()
	s := NewStatic(geom.NewRect(0, 0, 800, 600))
	s.SetViewport(geom.NewRect(0, 0, 1024, 768))

	got, err := s.Viewport(ctx)
	if err != nil {
		t.Fatalf("Viewport() error = %v", err)
	}
	if got.Width != 1024 || got.Height != 768 {
		t.Errorf("Viewport() = %v, want 1024x768", got)
	}
}

func TestStaticCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewStatic(geom.NewRect(0, 0, 10, 10))
	if _, err := s.Viewport(ctx); err != context.Canceled {
		t.Errorf("Viewport() error = %v, want %v", err, context.Canceled)
	}
	if _, err := s.Measure(ctx, "x"); err != context.Canceled {
		t.Errorf("Measure() error = %v, want %v", err, context.Canceled)
	}
}

func TestStaticConcurrent(t *testing.T) {
	ctx := context.Background()
	s := NewStatic(geom.NewRect(0, 0, 100, 100))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Set("el", geom.NewRect(float64(i), float64(j), 1, 1))
				_, _ = s.Measure(ctx, "el")
				_, _ = s.Viewport(ctx)
			}
		}(i)
	}
	wg.Wait()
}
