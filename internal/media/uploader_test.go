package media

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Minimal valid PNG header, enough for content-type sniffing.
var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestDecodePayload_PlainBase64(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString(pngBytes)

	data, contentType, err := decodePayload(payload)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
	assert.Equal(t, "image/png", contentType)
}

func TestDecodePayload_DataURI(t *testing.T) {
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)

	data, contentType, err := decodePayload(payload)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
	assert.Equal(t, "image/png", contentType)
}

func TestDecodePayload_InvalidBase64(t *testing.T) {
	_, _, err := decodePayload("not!!valid!!base64")
	assert.Error(t, err)
}

func TestDecodePayload_NonBase64DataURI(t *testing.T) {
	_, _, err := decodePayload("data:text/plain,hello")
	assert.Error(t, err)
}

func TestDecodePayload_Empty(t *testing.T) {
	_, _, err := decodePayload("")
	assert.Error(t, err)
}
