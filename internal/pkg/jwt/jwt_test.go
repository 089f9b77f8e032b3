package jwt

import "testing"

const testSecret = "test-secret-at-least-32-chars-long!!"

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(7, "clerk1", "STAFF", testSecret, 15)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateAccessToken(token, testSecret)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "clerk1" || claims.Role != "STAFF" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, _ := GenerateAccessToken(7, "clerk1", "STAFF", testSecret, 15)
	if _, err := ValidateAccessToken(token, "a-different-secret-value-entirely"); err == nil {
		t.Error("token validated with wrong secret")
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken(7, "token-uuid-1", testSecret, 7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateRefreshToken(token, testSecret)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 7 || claims.TokenID != "token-uuid-1" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestTokenKindsNotInterchangeable(t *testing.T) {
	access, _ := GenerateAccessToken(7, "clerk1", "STAFF", testSecret, 15)
	refresh, _ := GenerateRefreshToken(7, "token-uuid-1", testSecret, 7)

	if _, err := ValidateRefreshToken(access, testSecret); err == nil {
		t.Error("access token accepted as refresh token")
	}
	if _, err := ValidateAccessToken(refresh, testSecret); err == nil {
		t.Error("refresh token accepted as access token")
	}
}
