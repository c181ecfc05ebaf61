package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/piresc/angkut/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestConfig() models.JWTConfig {
	return models.JWTConfig{
		Secret:     "test-secret-key-for-jwt-signing",
		Expiration: 60,
		Issuer:     "angkut-test",
	}
}

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name   string
		userID uuid.UUID
		role   models.Role
	}{
		{name: "Customer token", userID: uuid.New(), role: models.RoleCustomer},
		{name: "Trucker token", userID: uuid.New(), role: models.RoleTrucker},
		{name: "Admin token", userID: uuid.New(), role: models.RoleAdmin},
		{name: "Zero UUID", userID: uuid.UUID{}, role: models.RoleCustomer},
	}

	cfg := getTestConfig()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenString, expiresAt, err := GenerateToken(tt.userID, tt.role, cfg)

			require.NoError(t, err)
			assert.NotEmpty(t, tokenString)
			assert.Greater(t, expiresAt, time.Now().Unix())

			claims, err := ValidateToken(tokenString, cfg.Secret)
			require.NoError(t, err)
			assert.Equal(t, tt.userID, claims.UserID)
			assert.Equal(t, tt.role, claims.Role)
			assert.Equal(t, cfg.Issuer, claims.Issuer)
			assert.Equal(t, expiresAt, claims.ExpiresAt.Unix())
		})
	}
}

func TestGenerateToken_ExpirationTime(t *testing.T) {
	cfg := getTestConfig()
	cfg.Expiration = 30

	before := time.Now()
	_, expiresAt, err := GenerateToken(uuid.New(), models.RoleTrucker, cfg)
	after := time.Now()

	assert.NoError(t, err)
	assert.GreaterOrEqual(t, expiresAt, before.Add(30*time.Minute).Unix())
	assert.LessOrEqual(t, expiresAt, after.Add(30*time.Minute).Unix())
}

func TestValidateToken(t *testing.T) {
	cfg := getTestConfig()
	validToken, _, err := GenerateToken(uuid.New(), models.RoleCustomer, cfg)
	require.NoError(t, err)

	expiredCfg := cfg
	expiredCfg.Expiration = -1
	expiredToken, _, err := GenerateToken(uuid.New(), models.RoleCustomer, expiredCfg)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: uuid.New()}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name        string
		tokenString string
		secret      string
		expectError bool
	}{
		{name: "Valid token", tokenString: validToken, secret: cfg.Secret},
		{name: "Invalid secret", tokenString: validToken, secret: "wrong-secret", expectError: true},
		{name: "Malformed token", tokenString: "invalid.token.string", secret: cfg.Secret, expectError: true},
		{name: "Empty token", tokenString: "", secret: cfg.Secret, expectError: true},
		{name: "Expired token", tokenString: expiredToken, secret: cfg.Secret, expectError: true},
		{name: "Unsigned token", tokenString: noneToken, secret: cfg.Secret, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ValidateToken(tt.tokenString, tt.secret)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, claims)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, claims)
			}
		})
	}
}

func BenchmarkValidateToken(b *testing.B) {
	cfg := getTestConfig()
	tokenString, _, err := GenerateToken(uuid.New(), models.RoleTrucker, cfg)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ValidateToken(tokenString, cfg.Secret)
	}
}
