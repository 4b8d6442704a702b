package password

import (
	"errors"
	"os"
	"testing"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{
		"SIXCITIES_PASSWORD_MIN_LEN",
		"SIXCITIES_PASSWORD_MAX_LEN",
		"SIXCITIES_PASSWORD_REJECT_VERY_WEAK",
		"SIXCITIES_ARGON2_MEMORY_KIB",
		"SIXCITIES_ARGON2_ITERATIONS",
		"SIXCITIES_ARGON2_PARALLELISM",
		"SIXCITIES_ARGON2_KEY_LEN",
	} {
		_ = os.Unsetenv(k)
	}

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv error: %v", err)
	}

	if cfg != DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.Params.KeyLength != DigestLength {
		t.Fatalf("key length = %d, want %d", cfg.Params.KeyLength, DigestLength)
	}
}

func TestDefaultConfig_FixedParallelism(t *testing.T) {
	if p := DefaultConfig().Params.Parallelism; p != 2 {
		t.Fatalf("parallelism = %d, want 2", p)
	}
}

func TestFromEnv_Override(t *testing.T) {
	t.Setenv("SIXCITIES_PASSWORD_MIN_LEN", "10")
	t.Setenv("SIXCITIES_PASSWORD_MAX_LEN", "200")
	t.Setenv("SIXCITIES_PASSWORD_REJECT_VERY_WEAK", "yes")
	t.Setenv("SIXCITIES_ARGON2_MEMORY_KIB", "32768")
	t.Setenv("SIXCITIES_ARGON2_ITERATIONS", "4")
	t.Setenv("SIXCITIES_ARGON2_PARALLELISM", "1")
	t.Setenv("SIXCITIES_ARGON2_KEY_LEN", "32")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv error: %v", err)
	}

	if cfg.Policy.MinLength != 10 || cfg.Policy.MaxLength != 200 || !cfg.Policy.RejectVeryWeak {
		t.Fatalf("policy override failed: %+v", cfg.Policy)
	}
	if cfg.Params.MemoryKiB != 32768 || cfg.Params.Iterations != 4 || cfg.Params.Parallelism != 1 {
		t.Fatalf("argon2 override failed: %+v", cfg.Params)
	}
	if cfg.Params.KeyLength != 32 {
		t.Fatalf("len override failed: %+v", cfg.Params)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := map[string]string{
		"SIXCITIES_ARGON2_MEMORY_KIB":         "12",
		"SIXCITIES_ARGON2_ITERATIONS":         "zero",
		"SIXCITIES_ARGON2_PARALLELISM":        "300",
		"SIXCITIES_PASSWORD_REJECT_VERY_WEAK": "maybe",
	}

	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			if _, err := FromEnv(); err == nil {
				t.Fatalf("expected error for %s=%s", key, val)
			}
		})
	}
}

func TestFromEnv_InvalidMinMax(t *testing.T) {
	t.Setenv("SIXCITIES_PASSWORD_MIN_LEN", "20")
	t.Setenv("SIXCITIES_PASSWORD_MAX_LEN", "10")

	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected error")
	}
}

func TestPepperFromEnv(t *testing.T) {
	t.Setenv(PepperEnvKey, "")
	if _, err := PepperFromEnv(); !errors.Is(err, ErrPepperMissing) {
		t.Fatalf("expected ErrPepperMissing, got %v", err)
	}

	t.Setenv(PepperEnvKey, "   ")
	if _, err := PepperFromEnv(); !errors.Is(err, ErrPepperMissing) {
		t.Fatalf("blank pepper: expected ErrPepperMissing, got %v", err)
	}

	t.Setenv(PepperEnvKey, " pepper ")
	got, err := PepperFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != " pepper " {
		t.Fatalf("pepper=%q, want verbatim value", got)
	}
}
