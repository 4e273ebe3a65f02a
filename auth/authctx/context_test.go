package authctx

import (
	"context"
	"errors"
	"testing"

	"github.com/kbukum/cognito-gateway/auth"
)

func TestSetGet(t *testing.T) {
	id := &auth.Identity{Username: "ab"}
	ctx := Set(context.Background(), id)

	got, ok := Get(ctx)
	if !ok {
		t.Fatal("expected identity in context")
	}
	if got != id {
		t.Error("expected the same identity pointer")
	}
}

func TestGetMissing(t *testing.T) {
	if _, ok := Get(context.Background()); ok {
		t.Error("expected no identity in empty context")
	}
	if _, ok := Get(Set(context.Background(), nil)); ok {
		t.Error("expected nil identity to be reported as missing")
	}
}

func TestGetOrError(t *testing.T) {
	_, err := GetOrError(context.Background())
	if !errors.Is(err, ErrNoIdentity) {
		t.Errorf("expected ErrNoIdentity, got %v", err)
	}

	id := &auth.Identity{Username: "ab"}
	got, err := GetOrError(Set(context.Background(), id))
	if err != nil || got != id {
		t.Errorf("expected identity, got %v, %v", got, err)
	}
}
