package utils_test

import (
	"strings"
	"testing"
	"time"

	"github.com/Kyz7/storefront/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := utils.GenerateJWT(42, time.Minute)
	require.NoError(t, err)

	id, err := utils.ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestParseJWTRejects(t *testing.T) {
	t.Run("Expired", func(t *testing.T) {
		token, err := utils.GenerateJWT(1, -time.Minute)
		require.NoError(t, err)
		_, err = utils.ParseJWT(token)
		assert.Error(t, err)
	})

	t.Run("Zero subject", func(t *testing.T) {
		token, err := utils.GenerateJWT(0, time.Minute)
		require.NoError(t, err)
		_, err = utils.ParseJWT(token)
		assert.Error(t, err)
	})

	t.Run("Unsigned token", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "1"}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = utils.ParseJWT(token)
		assert.Error(t, err)
	})
}

func TestValidateJWTSecret(t *testing.T) {
	assert.Error(t, utils.ValidateJWTSecret(""))
	assert.Error(t, utils.ValidateJWTSecret("short"))
	assert.Error(t, utils.ValidateJWTSecret("test_secret_key_minimum_32_characters_long_for_testing_only"))
	assert.NoError(t, utils.ValidateJWTSecret(strings.Repeat("k", 48)))
}

func TestValidateStruct(t *testing.T) {
	var body struct {
		Name string `validate:"required"`
	}
	errs := utils.ValidateStruct(body)
	assert.Equal(t, map[string]string{"name": "name is required"}, errs)

	body.Name = "ok"
	assert.Nil(t, utils.ValidateStruct(body))
}

func TestConfigureJWT(t *testing.T) {
	t.Cleanup(func() { _, _ = utils.ConfigureJWT("", true) })

	t.Run("Error - Empty secret is refused by default", func(t *testing.T) {
		insecure, err := utils.ConfigureJWT("", false)
		assert.Error(t, err)
		assert.False(t, insecure)
	})

	t.Run("Error - Published test key is refused by default", func(t *testing.T) {
		_, err := utils.ConfigureJWT("test_secret_key_minimum_32_characters_long_for_testing_only", false)
		assert.Error(t, err)
	})

	t.Run("Success - Explicit opt-in falls back to the test key", func(t *testing.T) {
		insecure, err := utils.ConfigureJWT("", true)
		require.NoError(t, err)
		assert.True(t, insecure)
	})

	t.Run("Success - Strong secret replaces the test key", func(t *testing.T) {
		forged, err := utils.GenerateJWT(1, time.Minute)
		require.NoError(t, err)

		insecure, err := utils.ConfigureJWT(strings.Repeat("s", 48), false)
		require.NoError(t, err)
		assert.False(t, insecure)

		_, err = utils.ParseJWT(forged)
		assert.Error(t, err, "tokens signed with the test key must stop verifying")

		token, err := utils.GenerateJWT(1, time.Minute)
		require.NoError(t, err)
		id, err := utils.ParseJWT(token)
		require.NoError(t, err)
		assert.Equal(t, uint(1), id)
	})
}
