package main

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jetton "github.com/branched-services/go-jetton"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &bytes.Buffer{}
	require.NoError(t, app.Run(append([]string{"jettonctl", "--verbosity", "0"}, args...)))
	return strings.TrimSpace(out.String())
}

func TestParseFields(t *testing.T) {
	fields, err := parseFields([]string{"name=Token", "description=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"name": "Token", "description": "a=b"}, fields)

	_, err = parseFields([]string{"name"})
	assert.Error(t, err)
}

func TestDecodeBOCFormats(t *testing.T) {
	content, err := jetton.BuildOffchainMetadata("https://example.org/jetton.json")
	require.NoError(t, err)
	boc := content.ToBOC()

	path := filepath.Join(t.TempDir(), "content.boc")
	require.NoError(t, os.WriteFile(path, boc, 0o600))

	for _, arg := range []string{
		hexutil.Encode(boc),
		base64.StdEncoding.EncodeToString(boc),
		"@" + path,
	} {
		c, err := decodeBOC(arg)
		require.NoError(t, err)
		assert.True(t, c.Equal(content))
	}

	_, err = decodeBOC("0xzz")
	assert.Error(t, err)
}

func TestMetadataBuildDecode(t *testing.T) {
	boc := run(t, "metadata", "build", "--field", "name=Jetton", "--field", "symbol=JET")
	require.True(t, strings.HasPrefix(boc, "0x"))

	out := run(t, "metadata", "decode", boc)
	assert.Contains(t, out, "onchain")
	assert.Contains(t, out, "Jetton")
	assert.Contains(t, out, "JET")
}

func TestMessageRoundTrip(t *testing.T) {
	owner := "0:" + strings.Repeat("ab", 32)
	boc := run(t, "--base64", "message", "burn", "--response", owner, "--amount", "1.5", "--decimals", "2")

	out := run(t, "message", "decode", boc)
	assert.Contains(t, out, "burn")
	assert.Contains(t, out, "150")
	assert.Contains(t, out, owner)
}

func TestAmountConversions(t *testing.T) {
	assert.Equal(t, "1500000000", run(t, "amount", "to-units", "1.5"))
	assert.Equal(t, "0.015", run(t, "amount", "from-units", "--decimals", "3", "15"))
}

func TestIPFSCID(t *testing.T) {
	out := run(t, "ipfs", "cid", "--field", "name=Jetton")
	assert.Contains(t, out, `{"name":"Jetton"}`)
	assert.Contains(t, out, "ipfs://b")
}
