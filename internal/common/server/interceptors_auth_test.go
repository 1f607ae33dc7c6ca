package server

import (
	"context"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/openfleet/openfleet/internal/common/auth"
	"github.com/openfleet/openfleet/internal/common/config"
)

func TestUnaryJWTAuthInterceptorAndRBAC(t *testing.T) {
	authCfg := config.AuthConfig{
		Enabled:   true,
		JWTSecret: "test-secret",
		Issuer:    "openfleet",
		Audience:  "openfleet",
		RBAC: map[string][]string{
			"/fleet.FleetService/Retire": {"admin"},
			"/fleet.FleetService/Get":    {},
		},
	}

	tokenStr, _, err := auth.GenerateAccessToken(authCfg, "op-1", []string{"operator", "admin"}, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	authIC := UnaryJWTAuthInterceptor(authCfg, nil)
	rbacIC := UnaryRBACInterceptor(authCfg)
	chain := UnaryChain(authIC, rbacIC)

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+tokenStr))
	info := &grpc.UnaryServerInfo{FullMethod: "/fleet.FleetService/Retire"}

	_, err = chain(ctx, nil, info, func(ctx context.Context, req any) (any, error) {
		ai, ok := AuthFromContext(ctx)
		if !ok {
			t.Fatalf("missing auth info in ctx")
		}
		if ai.Subject != "op-1" {
			t.Fatalf("subject mismatch: %s", ai.Subject)
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("expected allow, got err=%v", err)
	}

	// 换一个只有 operator 角色的 token，应被 RBAC 拒绝
	tokenStr2, _, err := auth.GenerateAccessToken(authCfg, "op-2", []string{"operator"}, time.Hour)
	if err != nil {
		t.Fatalf("sign token2: %v", err)
	}
	ctx2 := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+tokenStr2))

	_, err = chain(ctx2, nil, info, func(ctx context.Context, req any) (any, error) {
		return "ok", nil
	})
	if err == nil {
		t.Fatalf("expected permission denied, got nil")
	}

	// 没带 token 直接拒绝
	_, err = chain(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		return "ok", nil
	})
	if err == nil {
		t.Fatalf("expected unauthenticated, got nil")
	}
}

func TestBearerToken(t *testing.T) {
	if got := BearerToken("Bearer abc"); got != "abc" {
		t.Fatalf("unexpected token: %q", got)
	}
	if got := BearerToken("  bearer   abc  "); got != "abc" {
		t.Fatalf("unexpected token: %q", got)
	}
	if got := BearerToken("abc"); got != "abc" {
		t.Fatalf("unexpected token: %q", got)
	}
}
