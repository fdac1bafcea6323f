package app

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cid "github.com/ipfs/go-cid"
	multihash "github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentID(t *testing.T) {
	a, err := ContentID([]byte("hello"))
	require.NoError(t, err)
	b, err := ContentID([]byte("hello"))
	require.NoError(t, err)
	c, err := ContentID([]byte("hello!"))
	require.NoError(t, err)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.Equal(t, uint64(1), a.Version())
	assert.Equal(t, uint64(cid.Raw), a.Type())
	// base32 encoded raw sha2-256 identifiers share this prefix
	assert.True(t, strings.HasPrefix(a.String(), "bafkrei"), a.String())

	parsed, err := cid.Decode(a.String())
	require.NoError(t, err)
	assert.True(t, a.Equals(parsed))
	assert.Equal(t, uint64(multihash.SHA2_256), parsed.Prefix().MhType)
}

func TestFileContentID(t *testing.T) {
	dir, err := ioutil.TempDir("", "nftd-cid")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "content.txt")
	require.NoError(t, ioutil.WriteFile(path, []byte("hello"), 0600))

	fromFile, err := FileContentID(path)
	require.NoError(t, err)
	direct, err := ContentID([]byte("hello"))
	require.NoError(t, err)
	assert.True(t, direct.Equals(fromFile))

	_, err = FileContentID(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
