package loop

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/newton/internal/loop/client"
	"github.com/tomz197/newton/internal/loop/server"
	"github.com/tomz197/newton/internal/scene"
)

func fixedSize() (int, int, error) { return 80, 24, nil }

func TestRunQuits(t *testing.T) {
	var out bytes.Buffer
	opts := Options{
		Server: server.Options{Layout: "boxes", Seed: 1},
		Client: client.ClientOptions{TermSizeFunc: fixedSize},
	}

	done := make(chan error, 1)
	go func() {
		done <- Run(context.Background(), bufio.NewReader(strings.NewReader("q")), &out, opts)
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after quit")
	}
	if !strings.Contains(out.String(), "layout: boxes") {
		t.Error("no frame with the HUD was drawn")
	}
}

func TestRunRejectsUnknownLayout(t *testing.T) {
	err := Run(context.Background(), bufio.NewReader(strings.NewReader("")), &bytes.Buffer{}, Options{
		Server: server.Options{Layout: "nope"},
	})
	if !errors.Is(err, scene.ErrUnknownLayout) {
		t.Errorf("Run error = %v, want ErrUnknownLayout", err)
	}
}
