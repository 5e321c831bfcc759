package main

import (
	"strings"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	db := testDB(t)
	auth := NewAuth(db)

	id, token, err := auth.Register("pilot", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if id == 0 || token == "" {
		t.Fatal("register should return id and token")
	}

	// Token from registration validates
	pid, username, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if pid != id || username != "pilot" {
		t.Errorf("token claims mismatch: %d %s", pid, username)
	}

	// Fresh login with the right password
	pid2, token2, err := auth.Login("pilot", "secret1", "1.2.3.4")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if pid2 != id || token2 == "" {
		t.Error("login should return the same player id and a token")
	}

	// Wrong password is rejected without leaking which part failed
	if _, _, err := auth.Login("pilot", "wrong", "1.2.3.4"); err == nil {
		t.Error("wrong password should fail")
	} else if !strings.Contains(err.Error(), "invalid username or password") {
		t.Errorf("error should not distinguish cause: %v", err)
	}
	if _, _, err := auth.Login("nobody", "secret1", "1.2.3.4"); err == nil {
		t.Error("unknown user should fail")
	}
}

func TestRegisterValidation(t *testing.T) {
	db := testDB(t)
	auth := NewAuth(db)

	if _, _, err := auth.Register("x", "secret1"); err == nil {
		t.Error("one-char username should be rejected")
	}
	if _, _, err := auth.Register(strings.Repeat("a", 17), "secret1"); err == nil {
		t.Error("17-char username should be rejected")
	}
	if _, _, err := auth.Register("pilot", "abc"); err == nil {
		t.Error("3-char password should be rejected")
	}

	if _, _, err := auth.Register("pilot", "secret1"); err != nil {
		t.Fatalf("valid registration: %v", err)
	}
	if _, _, err := auth.Register("pilot", "secret1"); err == nil {
		t.Error("duplicate username should be rejected")
	}
	// Whitespace is trimmed before the uniqueness check
	if _, _, err := auth.Register("  pilot  ", "secret1"); err == nil {
		t.Error("padded duplicate username should be rejected")
	}
}

func TestGuestAccounts(t *testing.T) {
	db := testDB(t)
	auth := NewAuth(db)

	id, name, token, err := auth.Guest()
	if err != nil {
		t.Fatalf("guest: %v", err)
	}
	if !strings.HasPrefix(name, "Guest_") || len(name) != len("Guest_")+6 {
		t.Errorf("guest name should be Guest_ plus 6 hex chars, got %q", name)
	}

	pid, username, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("guest token should validate: %v", err)
	}
	if pid != id || username != name {
		t.Errorf("token claims mismatch: %d %s", pid, username)
	}

	player, err := db.GetPlayerByUsername(name)
	if err != nil || player == nil {
		t.Fatalf("guest row: %v, %v", player, err)
	}
	if !player.IsGuest {
		t.Error("guest account should be flagged is_guest")
	}
	if stats, _ := db.GetStats(id); stats == nil {
		t.Error("guest should get a stats row so runs can be recorded")
	}

	id2, name2, _, err := auth.Guest()
	if err != nil {
		t.Fatalf("second guest: %v", err)
	}
	if id2 == id || name2 == name {
		t.Error("each guest should get a fresh account")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	db := testDB(t)
	auth := NewAuth(db)

	if _, _, err := auth.ValidateToken("not.a.token"); err == nil {
		t.Error("garbage token should fail")
	}

	// A token signed under a different secret must not validate
	other := NewAuth(nil)
	foreign, err := other.generateToken(7, "intruder")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, _, err := auth.ValidateToken(foreign); err == nil {
		t.Error("foreign-signed token should fail")
	}
}

func TestLoginRateLimit(t *testing.T) {
	db := testDB(t)
	auth := NewAuth(db)
	auth.Register("pilot", "secret1")

	// Burn through the per-IP attempt budget with bad passwords
	for i := 0; i < maxLoginAttempts; i++ {
		auth.Login("pilot", "wrong", "9.9.9.9")
	}
	_, _, err := auth.Login("pilot", "secret1", "9.9.9.9")
	if err == nil || !strings.Contains(err.Error(), "too many") {
		t.Errorf("expected rate limit error, got %v", err)
	}

	// Other IPs are unaffected
	if _, _, err := auth.Login("pilot", "secret1", "8.8.8.8"); err != nil {
		t.Errorf("different IP should still log in: %v", err)
	}
}

func TestJWTSecretPersists(t *testing.T) {
	db := testDB(t)

	a1 := NewAuth(db)
	id, token, err := a1.Register("pilot", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// A second Auth against the same database loads the same secret, so
	// tokens survive restarts
	a2 := NewAuth(db)
	pid, _, err := a2.ValidateToken(token)
	if err != nil {
		t.Fatalf("token should survive a restart: %v", err)
	}
	if pid != id {
		t.Errorf("expected player %d, got %d", id, pid)
	}
}
