package filewatch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nitikab23/autoai/pkg/utils/filewatch"
)

func TestUntilModifyContext(t *testing.T) {

	waitDone := func(t *testing.T, ctx context.Context) {
		t.Helper()
		select {
		case <-ctx.Done():
		case <-time.After(3 * time.Second):
			t.Fatal("the context is not cancelled")
		}
	}

	t.Run("writing a watched file cancels the context", func(t *testing.T) {
		root := t.TempDir()
		target := filepath.Join(root, "config.yaml")
		if err := os.WriteFile(target, []byte("before"), os.ModePerm); err != nil {
			t.Fatal(err)
		}

		ctx, cancel, err := filewatch.UntilModifyContext(context.Background(), target)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		defer cancel()

		if err := os.WriteFile(target, []byte("after"), os.ModePerm); err != nil {
			t.Fatal(err)
		}

		waitDone(t, ctx)
	})

	t.Run("removing a watched file cancels the context", func(t *testing.T) {
		root := t.TempDir()
		target := filepath.Join(root, "config.yaml")
		if err := os.WriteFile(target, []byte("before"), os.ModePerm); err != nil {
			t.Fatal(err)
		}

		ctx, cancel, err := filewatch.UntilModifyContext(context.Background(), target)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		defer cancel()

		if err := os.Remove(target); err != nil {
			t.Fatal(err)
		}

		waitDone(t, ctx)
	})

	t.Run("an untouched file leaves the context alive", func(t *testing.T) {
		root := t.TempDir()
		target := filepath.Join(root, "config.yaml")
		if err := os.WriteFile(target, []byte("before"), os.ModePerm); err != nil {
			t.Fatal(err)
		}

		ctx, cancel, err := filewatch.UntilModifyContext(context.Background(), target)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		defer cancel()

		select {
		case <-ctx.Done():
			t.Errorf("the context should stay alive: %s", context.Cause(ctx))
		case <-time.After(100 * time.Millisecond):
		}
	})

	t.Run("cancellation of the parent context propagates", func(t *testing.T) {
		root := t.TempDir()
		target := filepath.Join(root, "config.yaml")
		if err := os.WriteFile(target, []byte("before"), os.ModePerm); err != nil {
			t.Fatal(err)
		}

		parent, parentCancel := context.WithCancel(context.Background())
		defer parentCancel()

		ctx, cancel, err := filewatch.UntilModifyContext(parent, target)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		defer cancel()

		parentCancel()
		waitDone(t, ctx)
	})

	t.Run("a missing file is an error", func(t *testing.T) {
		root := t.TempDir()

		ctx, cancel, err := filewatch.UntilModifyContext(
			context.Background(), filepath.Join(root, "no-such-file"),
		)
		if err == nil {
			defer cancel()
			t.Fatal("watching a missing file should fail")
		}
		if ctx != nil || cancel != nil {
			t.Error("on error, context and cancel should be nil")
		}
	})
}
