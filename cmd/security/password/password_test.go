package password

import (
	"bytes"
	"errors"
	"testing"
)

// testParams keeps Argon2id cheap enough for unit tests.
var testParams = Argon2idParams{MemoryKiB: 1024, Iterations: 1, Parallelism: 1, KeyLength: DigestLength}

func TestDerive_Deterministic(t *testing.T) {
	a := Derive("correct horse", "pepper-1", testParams)
	b := Derive("correct horse", "pepper-1", testParams)

	if !bytes.Equal(a, b) {
		t.Fatalf("expected identical digests for identical input")
	}
	if len(a) != DigestLength {
		t.Fatalf("digest length = %d, want %d", len(a), DigestLength)
	}
}

func TestDerive_DistinctInputs(t *testing.T) {
	base := Derive("correct horse", "pepper-1", testParams)

	if bytes.Equal(base, Derive("correct horsf", "pepper-1", testParams)) {
		t.Fatalf("different passwords produced the same digest")
	}
	if bytes.Equal(base, Derive("correct horse", "pepper-2", testParams)) {
		t.Fatalf("different peppers produced the same digest")
	}
}

func TestHasher_RoundTrip(t *testing.T) {
	h, err := NewHasher(testParams, "pepper")
	if err != nil {
		t.Fatalf("NewHasher error: %v", err)
	}

	passwords := []string{"a", "secret1", "пароль-юникод", "with spaces and symbols !@#"}
	for _, pw := range passwords {
		d := h.Derive(pw)
		if !h.Verify(pw, d) {
			t.Fatalf("Verify(%q) = false, want true", pw)
		}
		if h.Verify(pw+"x", d) {
			t.Fatalf("Verify accepted a different password for %q", pw)
		}
	}
}

func TestHasher_WrongPepper(t *testing.T) {
	a, _ := NewHasher(testParams, "pepper-a")
	b, _ := NewHasher(testParams, "pepper-b")

	if b.Verify("secret1", a.Derive("secret1")) {
		t.Fatalf("digest verified under a different pepper")
	}
}

func TestNewHasher_EmptyPepper(t *testing.T) {
	if _, err := NewHasher(testParams, ""); !errors.Is(err, ErrPepperMissing) {
		t.Fatalf("expected ErrPepperMissing, got %v", err)
	}
}

func TestNewHasher_RejectsZeroCost(t *testing.T) {
	noRounds := testParams
	noRounds.Iterations = 0
	noLanes := testParams
	noLanes.Parallelism = 0

	for name, p := range map[string]Argon2idParams{"iterations": noRounds, "parallelism": noLanes} {
		h, err := NewHasher(p, "pepper")
		if !errors.Is(err, ErrInvalidParams) {
			t.Fatalf("%s: expected ErrInvalidParams, got %v", name, err)
		}
		if h != nil {
			t.Fatalf("%s: expected nil hasher", name)
		}
	}
}

func TestNewHasher_DefaultsKeyLength(t *testing.T) {
	p := testParams
	p.KeyLength = 0

	h, err := NewHasher(p, "pepper")
	if err != nil {
		t.Fatalf("NewHasher error: %v", err)
	}
	if got := len(h.Derive("x")); got != DigestLength {
		t.Fatalf("digest length = %d, want %d", got, DigestLength)
	}
}

func TestEqual(t *testing.T) {
	cases := []struct {
		name string
		a, b []byte
		want bool
	}{
		{"equal", []byte{1, 2, 3}, []byte{1, 2, 3}, true},
		{"last byte differs", []byte{1, 2, 3}, []byte{1, 2, 4}, false},
		{"shorter", []byte{1, 2}, []byte{1, 2, 3}, false},
		{"longer", []byte{1, 2, 3, 4}, []byte{1, 2, 3}, false},
		{"both empty", nil, []byte{}, true},
	}

	for _, tc := range cases {
		if got := Equal(tc.a, tc.b); got != tc.want {
			t.Fatalf("%s: Equal = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestVerify_TruncatedDigest(t *testing.T) {
	d := Derive("secret1", "pepper", testParams)

	if Verify("secret1", d[:len(d)-1], "pepper", testParams) {
		t.Fatalf("truncated digest must not verify")
	}
	if Verify("secret1", nil, "pepper", testParams) {
		t.Fatalf("empty digest must not verify")
	}
}

func TestValidate_MinMax(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Policy.MinLength = 6
	cfg.Policy.MaxLength = 12

	if err := cfg.Validate("short"); err != ErrPasswordTooShort {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
	if err := cfg.Validate("this one is too long"); err != ErrPasswordTooLong {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
	if err := cfg.Validate("goodpass1"); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
}

func TestPolicy_RejectVeryWeak(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Policy.RejectVeryWeak = true

	for _, pw := range []string{"password", "11111111", "aaaaaaa", "482913"} {
		if err := cfg.Validate(pw); err != ErrWeakPassword {
			t.Fatalf("Validate(%q): expected ErrWeakPassword, got %v", pw, err)
		}
	}
	if err := cfg.Validate("a-very-ok-pass"); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
}
