package pagination_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/oggyb/muzz-discovery/internal/utils/pagination"
)

func TestPageCursorRoundTrip(t *testing.T) {
	in := pagination.PageCursor{Page: 3, PageSize: 25, Fingerprint: []byte{0xde, 0xad, 0xbe, 0xef}}

	out, err := pagination.DecodePage(pagination.EncodePage(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.True(t, out.Matches([]byte{0xde, 0xad, 0xbe, 0xef}))
	assert.False(t, out.Matches([]byte{0xde, 0xad}))
}

func TestDecodePageRejectsGarbage(t *testing.T) {
	for _, token := range []string{"", "!!!", base64.RawURLEncoding.EncodeToString([]byte{0xff})} {
		_, err := pagination.DecodePage(token)
		assert.ErrorIs(t, err, pagination.ErrInvalidToken, "token %q", token)
	}

	// well-formed wire data but no page
	var b []byte
	b = protowire.AppendTag(b, 3, protowire.BytesType)
	b = protowire.AppendBytes(b, []byte("fp"))
	_, err := pagination.DecodePage(base64.RawURLEncoding.EncodeToString(b))
	assert.ErrorIs(t, err, pagination.ErrInvalidToken)
}

func TestDecodePageRejectsHugePage(t *testing.T) {
	for _, c := range []pagination.PageCursor{
		{Page: 1<<62 + 1, PageSize: 2, Fingerprint: []byte("fp")},
		{Page: 2, PageSize: 1 << 40, Fingerprint: []byte("fp")},
	} {
		_, err := pagination.DecodePage(pagination.EncodePage(c))
		assert.ErrorIs(t, err, pagination.ErrInvalidToken, "cursor %+v", c)
	}
}

func TestDecodePageSkipsUnknownFields(t *testing.T) {
	token := pagination.EncodePage(pagination.PageCursor{Page: 2, PageSize: 10, Fingerprint: []byte("fp")})
	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	raw = protowire.AppendTag(raw, 9, protowire.VarintType)
	raw = protowire.AppendVarint(raw, 7)

	c, err := pagination.DecodePage(base64.RawURLEncoding.EncodeToString(raw))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Page)
}

func TestKeysetCursor(t *testing.T) {
	c, err := pagination.DecodeKeyset("")
	require.NoError(t, err)
	assert.True(t, c.IsZero())

	token, err := pagination.EncodeKeyset(pagination.KeysetCursor{PeerID: 7, CreatedUnixNano: 1700000000000123456})
	require.NoError(t, err)
	c, err = pagination.DecodeKeyset(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), c.PeerID)
	assert.Equal(t, int64(123456), c.CreatedAt().UnixNano()%int64(time.Millisecond), "sub-millisecond precision kept")

	_, err = pagination.DecodeKeyset("not-base64!")
	assert.ErrorIs(t, err, pagination.ErrInvalidToken)
}
