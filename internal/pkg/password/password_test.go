package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("correct-horse-battery")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if !Verify("correct-horse-battery", hash) {
		t.Error("correct password failed verification")
	}
	if Verify("wrong-password", hash) {
		t.Error("wrong password passed verification")
	}

	// same input, different salt
	hash2, _ := Hash("correct-horse-battery")
	if hash == hash2 {
		t.Error("two hashes of the same password are identical")
	}
}

func TestHashTokenDeterministic(t *testing.T) {
	a := HashToken("some-refresh-token")
	b := HashToken("some-refresh-token")
	if a != b {
		t.Error("token hash is not deterministic")
	}
	if len(a) != 64 {
		t.Errorf("token hash length = %d, want 64 hex chars", len(a))
	}
	if a == HashToken("other-token") {
		t.Error("different tokens hash identically")
	}
}

func TestValidate(t *testing.T) {
	if Validate("short") {
		t.Error("7-char password accepted")
	}
	if !Validate("12345678") {
		t.Error("8-char password rejected")
	}
}
