package main

import (
	"strings"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	db := openTestDB(t)
	auth := NewAuth(db)

	id, token, err := auth.Register("pilot1", "secret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if id == 0 || token == "" {
		t.Fatal("register should return id and token")
	}

	gotID, gotToken, err := auth.Login("pilot1", "secret", "1.2.3.4")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if gotID != id || gotToken == "" {
		t.Errorf("login id = %d, want %d", gotID, id)
	}

	if _, _, err := auth.Login("pilot1", "wrong", "1.2.3.4"); err == nil {
		t.Error("wrong password should fail")
	}
	if _, _, err := auth.Login("ghost", "secret", "1.2.3.4"); err == nil {
		t.Error("unknown user should fail")
	}
}

func TestRegisterValidation(t *testing.T) {
	db := openTestDB(t)
	auth := NewAuth(db)

	if _, _, err := auth.Register("x", "password"); err == nil {
		t.Error("too-short username should fail")
	}
	if _, _, err := auth.Register(strings.Repeat("a", maxUsernameLen+1), "password"); err == nil {
		t.Error("too-long username should fail")
	}
	if _, _, err := auth.Register("okname", "abc"); err == nil {
		t.Error("too-short password should fail")
	}

	if _, _, err := auth.Register("taken", "password"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := auth.Register("taken", "password2"); err == nil {
		t.Error("duplicate username should fail")
	}
}

func TestTokenValidation(t *testing.T) {
	db := openTestDB(t)
	auth := NewAuth(db)

	id, token, err := auth.Register("tokenuser", "secret")
	if err != nil {
		t.Fatal(err)
	}

	gotID, gotUser, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if gotID != id || gotUser != "tokenuser" {
		t.Errorf("claims = %d/%q, want %d/tokenuser", gotID, gotUser, id)
	}

	if _, _, err := auth.ValidateToken("not.a.token"); err == nil {
		t.Error("garbage token should fail")
	}
	if _, _, err := auth.ValidateToken(token + "x"); err == nil {
		t.Error("tampered token should fail")
	}
}

func TestJWTSecretPersists(t *testing.T) {
	db := openTestDB(t)
	a1 := NewAuth(db)
	_, token, err := a1.Register("persisted", "secret")
	if err != nil {
		t.Fatal(err)
	}

	// A second Auth over the same DB must load the same secret, so tokens
	// survive a server restart.
	a2 := NewAuth(db)
	if _, _, err := a2.ValidateToken(token); err != nil {
		t.Errorf("token invalid after secret reload: %v", err)
	}
}

func TestLoginRateLimit(t *testing.T) {
	db := openTestDB(t)
	auth := NewAuth(db)

	for i := 0; i < maxLoginAttempts; i++ {
		if !auth.checkRate("10.0.0.1") {
			t.Fatalf("attempt %d rejected below the limit", i+1)
		}
	}
	if auth.checkRate("10.0.0.1") {
		t.Error("attempt beyond the limit should be rejected")
	}
	// Other IPs are unaffected
	if !auth.checkRate("10.0.0.2") {
		t.Error("limit must be per IP")
	}
}

func TestGenerateGuestName(t *testing.T) {
	n := GenerateGuestName()
	if !strings.HasPrefix(n, "Rookie_") || len(n) != len("Rookie_")+6 {
		t.Errorf("guest name %q has wrong shape", n)
	}
	if GenerateGuestName() == n {
		t.Error("guest names should be unique")
	}
}
