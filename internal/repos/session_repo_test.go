package repos_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"shopadmin/internal/repos"
)

func openSessions(t *testing.T, secret string) *repos.SessionRepo {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return repos.NewSessionRepo(db, repos.NewSealer(secret))
}

func TestSessionRepo_BindGetUnbind(t *testing.T) {
	r := openSessions(t, "s3cret")
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := r.Bind(repos.Session{ID: "sid-1", Email: "admin@shop.test", Role: "ADMIN", Token: "tok-abc", ExpiresAt: exp}); err != nil {
		t.Fatal(err)
	}
	s, err := r.Get("sid-1")
	if err != nil {
		t.Fatal(err)
	}
	if s.Token != "tok-abc" || s.Email != "admin@shop.test" || !s.ExpiresAt.Equal(exp) {
		t.Fatalf("unexpected session %+v", s)
	}

	// rebinding replaces the token
	if err := r.Bind(repos.Session{ID: "sid-1", Email: "admin@shop.test", Role: "ADMIN", Token: "tok-new", ExpiresAt: exp}); err != nil {
		t.Fatal(err)
	}
	if s, _ = r.Get("sid-1"); s.Token != "tok-new" {
		t.Fatalf("want rebound token, got %q", s.Token)
	}

	if err := r.Unbind("sid-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Get("sid-1"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("want ErrNoRows, got %v", err)
	}
}

func TestSessionRepo_TokenIsNotStoredInClear(t *testing.T) {
	r := openSessions(t, "s3cret")
	if err := r.Bind(repos.Session{ID: "sid", Email: "a@b.co", Role: "ADMIN", Token: "plain-token", ExpiresAt: time.Now().Add(time.Hour)}); err != nil {
		t.Fatal(err)
	}
	var raw []byte
	if err := r.DB.Get(&raw, `SELECT token_sealed FROM sessions WHERE id='sid'`); err != nil {
		t.Fatal(err)
	}
	if string(raw) == "plain-token" || len(raw) == 0 {
		t.Fatalf("token stored in clear: %q", raw)
	}
}

func TestSessionRepo_PurgeExpired(t *testing.T) {
	r := openSessions(t, "s3cret")
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	_ = r.Bind(repos.Session{ID: "old", Email: "a@b.co", Role: "ADMIN", Token: "t", ExpiresAt: now.Add(-time.Minute)})
	_ = r.Bind(repos.Session{ID: "new", Email: "a@b.co", Role: "ADMIN", Token: "t", ExpiresAt: now.Add(time.Hour)})

	n, err := r.PurgeExpired(now)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("want 1 purged, got %d", n)
	}
	if _, err := r.Get("new"); err != nil {
		t.Fatalf("live session purged: %v", err)
	}
}

func TestSealer_WrongKey(t *testing.T) {
	sealed, err := repos.NewSealer("one").Seal([]byte("x"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := repos.NewSealer("two").Open(sealed); !errors.Is(err, repos.ErrUnseal) {
		t.Fatalf("want ErrUnseal, got %v", err)
	}
	if _, err := repos.NewSealer("one").Open([]byte("short")); !errors.Is(err, repos.ErrUnseal) {
		t.Fatalf("want ErrUnseal for short input, got %v", err)
	}
}
