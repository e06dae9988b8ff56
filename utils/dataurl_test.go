package utils_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventsnap/eventsnap-service/utils"
)

func TestDecodeImageDataURL(t *testing.T) {
	raw := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}
	encoded := base64.StdEncoding.EncodeToString(raw)

	t.Run("with data URL header", func(t *testing.T) {
		data, err := utils.DecodeImageDataURL("data:image/jpeg;base64," + encoded)
		require.NoError(t, err)
		assert.Equal(t, raw, data)
	})

	t.Run("bare base64", func(t *testing.T) {
		data, err := utils.DecodeImageDataURL(encoded)
		require.NoError(t, err)
		assert.Equal(t, raw, data)
	})

	t.Run("header without separator", func(t *testing.T) {
		_, err := utils.DecodeImageDataURL("data:image/jpeg;base64")
		assert.Error(t, err)
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, err := utils.DecodeImageDataURL("data:image/jpeg;base64,@@@not-base64@@@")
		assert.Error(t, err)
	})

	t.Run("empty payload", func(t *testing.T) {
		_, err := utils.DecodeImageDataURL("data:image/jpeg;base64,")
		assert.Error(t, err)
	})
}

func TestSecureCompare(t *testing.T) {
	assert.True(t, utils.SecureCompare("public-key", "public-key"))
	assert.False(t, utils.SecureCompare("public-key", "public-kez"))
	assert.False(t, utils.SecureCompare("public-key", "public"))
	assert.False(t, utils.SecureCompare("", "public-key"))
}
