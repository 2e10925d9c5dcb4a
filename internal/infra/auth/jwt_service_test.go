package auth

import (
	"testing"
	"time"

	"contacts/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Key = "test_signing_key_very_long_for_testing"
	cfg.JWT.Issuer = "contacts-api"
	cfg.JWT.Audience = "contacts-clients"

	return cfg
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)
	require.NotNil(t, jwtService)

	token, err := jwtService.Issue("alice")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := jwtService.Validate(token)
	require.NoError(t, err)
	require.NotNil(t, claims)
	assert.Equal(t, "alice", claims.Username())
	assert.Equal(t, "contacts-api", claims.Issuer)
	assert.Contains(t, claims.Audience, "contacts-clients")
	assert.NotEmpty(t, claims.ID)

	expiresAt := claims.ExpiresAt.Time
	issuedAt := claims.IssuedAt.Time
	assert.Equal(t, time.Hour, expiresAt.Sub(issuedAt))
}

func TestJWTService_FreshTokenIdentifiers(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	token1, err := jwtService.Issue("alice")
	require.NoError(t, err)
	token2, err := jwtService.Issue("alice")
	require.NoError(t, err)

	claims1, err := jwtService.Validate(token1)
	require.NoError(t, err)
	claims2, err := jwtService.Validate(token2)
	require.NoError(t, err)

	// jti is unique per issued token.
	assert.NotEqual(t, claims1.ID, claims2.ID)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	claims, err := jwtService.Validate("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_TamperedToken(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	token, err := jwtService.Issue("alice")
	require.NoError(t, err)

	// Flip one byte in the payload; the signature no longer matches.
	tampered := []byte(token)
	mid := len(tampered) / 2
	if tampered[mid] == 'a' {
		tampered[mid] = 'b'
	} else {
		tampered[mid] = 'a'
	}

	claims, err := jwtService.Validate(string(tampered))
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuerService, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	otherCfg := testJWTConfig()
	otherCfg.JWT.Key = "a_completely_different_signing_key"
	validatorService, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	token, err := issuerService.Issue("alice")
	require.NoError(t, err)

	claims, err := validatorService.Validate(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_WrongIssuerOrAudience(t *testing.T) {
	issuerCfg := testJWTConfig()
	issuerCfg.JWT.Issuer = "another-service"
	issuerService, err := NewJWTService(issuerCfg)
	require.NoError(t, err)

	validatorService, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	token, err := issuerService.Issue("alice")
	require.NoError(t, err)

	_, err = validatorService.Validate(token)
	assert.Error(t, err)

	audienceCfg := testJWTConfig()
	audienceCfg.JWT.Audience = "another-audience"
	audienceService, err := NewJWTService(audienceCfg)
	require.NoError(t, err)

	token, err = audienceService.Issue("alice")
	require.NoError(t, err)

	_, err = validatorService.Validate(token)
	assert.Error(t, err)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := &jwtService{
		key:      []byte("test_signing_key_very_long_for_testing"),
		issuer:   "contacts-api",
		audience: "contacts-clients",
		ttl:      -time.Minute,
	}

	token, err := svc.Issue("alice")
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_MissingConfig(t *testing.T) {
	cfg := testJWTConfig()
	cfg.JWT.Key = ""
	svc, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, svc)

	cfg = testJWTConfig()
	cfg.JWT.Issuer = ""
	svc, err = NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, svc)

	cfg = testJWTConfig()
	cfg.JWT.Audience = ""
	svc, err = NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, svc)
}
