package cmdutil

import (
	"bytes"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	A int `json:"a" yaml:"a"`
}

func TestEncodeJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, "json", sample{A: 1}, nil))
	assert.Contains(t, buf.String(), `"a": 1`)
}

func TestEncodeYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, "yaml", sample{A: 1}, nil))
	assert.Contains(t, buf.String(), "a: 1")
}

func TestEncodeCBORRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, "cbor", sample{A: 1}, nil))
	assert.NotEmpty(t, buf.Bytes())

	var got sample
	require.NoError(t, cbor.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sample{A: 1}, got)
}

func TestEncodeTextCallsRenderFunc(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, "text", sample{}, func() string { return "hello" }))
	assert.Equal(t, "hello\n", buf.String())
}

func TestEncodeUnknownFormatErrors(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, "bogus", sample{}, nil)
	assert.Error(t, err)
}
