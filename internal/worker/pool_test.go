package worker

import (
	"context"
	"errors"
	"testing"
)

func TestDoRunsFunctionAndPropagatesError(t *testing.T) {
	p := NewPool(1)

	ran := false
	if err := p.Do(context.Background(), func() error { ran = true; return nil }); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !ran {
		t.Fatal("fn did not run")
	}

	want := errors.New("inference failed")
	if err := p.Do(context.Background(), func() error { return want }); !errors.Is(err, want) {
		t.Fatalf("Do error = %v, want %v", err, want)
	}
}

func TestDoRespectsContextWhenFull(t *testing.T) {
	p := NewPool(1)

	hold := make(chan struct{})
	entered := make(chan struct{})
	done := make(chan struct{})
	go func() {
		p.Do(context.Background(), func() error { close(entered); <-hold; return nil })
		close(done)
	}()
	<-entered

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Do(ctx, func() error { return nil }); !errors.Is(err, context.Canceled) {
		t.Fatalf("Do on full pool = %v, want context.Canceled", err)
	}

	close(hold)
	<-done
	if p.InFlight() != 0 {
		t.Fatalf("InFlight = %d after drain, want 0", p.InFlight())
	}
}
