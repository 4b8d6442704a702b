package password

import "testing"

func BenchmarkDerive_DefaultConfig(b *testing.B) {
	h, err := NewHasher(DefaultConfig().Params, "benchmark-pepper")
	if err != nil {
		b.Fatalf("NewHasher error: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = h.Derive("this is a strong password 123!")
	}
}

func BenchmarkVerify_DefaultConfig(b *testing.B) {
	h, err := NewHasher(DefaultConfig().Params, "benchmark-pepper")
	if err != nil {
		b.Fatalf("NewHasher error: %v", err)
	}
	d := h.Derive("this is a strong password 123!")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !h.Verify("this is a strong password 123!", d) {
			b.Fatalf("Verify failed")
		}
	}
}
