package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/promopace/promopace-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "promopace-test",
		ExpirationMinutes: 60,
	}
}

func TestMintAndParseActorToken(t *testing.T) {
	cfg := testJWTConfig()
	repID := uuid.New()

	signed, err := MintActorToken(cfg, time.Now(), ActorTokenPayload{
		RepID:   repID,
		Email:   "rep@example.com",
		IsAdmin: true,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	claims, err := ParseActorToken(cfg, signed)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.RepID != repID {
		t.Fatalf("expected rep id %s, got %s", repID, claims.RepID)
	}
	if !claims.IsAdmin {
		t.Fatal("expected admin flag to survive the round trip")
	}
}

func TestParseActorTokenRejectsWrongIssuer(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintActorToken(cfg, time.Now(), ActorTokenPayload{RepID: uuid.New()})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	other := cfg
	other.Issuer = "someone-else"
	if _, err := ParseActorToken(other, signed); err == nil {
		t.Fatal("expected issuer mismatch to fail")
	}
}

func TestParseActorTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintActorToken(cfg, time.Now().Add(-48*time.Hour), ActorTokenPayload{RepID: uuid.New()})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	if _, err := ParseActorToken(cfg, signed); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestMintActorTokenRequiresRepID(t *testing.T) {
	if _, err := MintActorToken(testJWTConfig(), time.Now(), ActorTokenPayload{}); err == nil {
		t.Fatal("expected missing rep id to fail")
	}
}
