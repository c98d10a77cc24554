package services_test

import (
	"context"
	"testing"

	"vnrename/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithSessionID(ctx, "sess-1")
	ctx = services.WithFolder(ctx, "[Key] Clannad")
	ctx = services.WithRequestID(ctx, "req-123")

	if id, ok := services.SessionIDFromContext(ctx); !ok || id != "sess-1" {
		t.Fatalf("unexpected session id: %v %v", id, ok)
	}
	if folder, ok := services.FolderFromContext(ctx); !ok || folder != "[Key] Clannad" {
		t.Fatalf("unexpected folder: %v %v", folder, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithFolder(ctx, "")
	ctx = services.WithSessionID(ctx, "")
	if _, ok := services.FolderFromContext(ctx); ok {
		t.Fatal("expected no folder value")
	}
	if _, ok := services.SessionIDFromContext(ctx); ok {
		t.Fatal("expected no session value")
	}
}
