package echoapi

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/Sagar-Ghorade/SmartEdu/core/user"
)

// The middleware stores whatever parseToken returns; getContextClaims
// asserts that same token type, so a valid round-trip here is what keeps
// every bearer-protected route working.
func Test_parseToken(t *testing.T) {
	usr := user.User{ID: 7, Name: "Hero", Email: "hero@test.cm", Role: user.RoleStudent}

	validToken, err := GenerateToken(GetUserClaims(usr))
	if err != nil {
		t.Fatalf("GenerateToken() failed! err %v", err)
	}

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, GetUserClaims(usr)).SignedString([]byte("not-the-secret"))
	if err != nil {
		t.Fatalf("SignedString() failed! err %v", err)
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, GetUserClaims(usr)).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString() failed! err %v", err)
	}

	expiredClaims := GetUserClaims(usr)
	expiredClaims.ExpiresAt = time.Now().Add(-time.Hour).Unix()
	expired, err := GenerateToken(expiredClaims)
	if err != nil {
		t.Fatalf("GenerateToken() failed! err %v", err)
	}

	tests := []struct {
		name    string
		auth    string
		wantErr bool
	}{
		{name: "valid token", auth: validToken},
		{name: "forged signature", auth: forged, wantErr: true},
		{name: "unsigned token", auth: unsigned, wantErr: true},
		{name: "expired token", auth: expired, wantErr: true},
		{name: "garbage", auth: "not.a.token", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := appJWTConfig.ParseTokenFunc(tt.auth, nil)
			if tt.wantErr {
				if err == nil {
					t.Fatal("failed! expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("failed! err %v", err)
			}

			token, ok := got.(*jwt.Token)
			if !ok {
				t.Fatalf("failed! token type = %T; want *jwt.Token", got)
			}
			claims, ok := token.Claims.(*Claims)
			if !ok {
				t.Fatalf("failed! claims type = %T; want *Claims", token.Claims)
			}
			if claims.UserID() != usr.ID || claims.Email != usr.Email || claims.Role != usr.Role {
				t.Errorf("failed! claims = %v/%s/%s; want %v/%s/%s",
					claims.UserID(), claims.Email, claims.Role, usr.ID, usr.Email, usr.Role)
			}
		})
	}
}
