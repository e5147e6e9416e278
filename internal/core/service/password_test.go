package service

import "testing"

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := NewPasswordHasher(4) // min cost keeps the test fast

	hash, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "secret1" || hash == "" {
		t.Fatalf("expected opaque hash, got %q", hash)
	}

	if !h.Verify("secret1", hash) {
		t.Fatalf("correct password did not verify")
	}
	if h.Verify("secret2", hash) {
		t.Fatalf("wrong password verified")
	}
}

func TestPasswordHasher_SaltEmbedded(t *testing.T) {
	h := NewPasswordHasher(4)

	a, _ := h.Hash("same-password")
	b, _ := h.Hash("same-password")
	if a == b {
		t.Fatalf("two hashes of the same password should differ (random salt)")
	}
	if !h.Verify("same-password", a) || !h.Verify("same-password", b) {
		t.Fatalf("both hashes should verify against the original password")
	}
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	h := NewPasswordHasher(4)

	if h.Verify("anything", "not-a-bcrypt-hash") {
		t.Fatalf("malformed stored hash must verify as false, not panic or pass")
	}
	if h.Verify("anything", "") {
		t.Fatalf("empty stored hash must verify as false")
	}
}

func TestNewPasswordHasher_CostClamped(t *testing.T) {
	// Out-of-range costs fall back to the bcrypt default rather than
	// failing later at hash time.
	h := NewPasswordHasher(99)
	if _, err := h.Hash("x"); err != nil {
		t.Fatalf("hash with clamped cost failed: %v", err)
	}
}
