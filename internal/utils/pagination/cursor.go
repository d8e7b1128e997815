package pagination

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrInvalidToken is returned for tokens that cannot be decoded.
var ErrInvalidToken = errors.New("invalid pagination token")

// PageCursor is the opaque offset-pagination state handed to discovery clients.
// Fingerprint identifies the query that produced it.
type PageCursor struct {
	Page        int
	PageSize    int
	Fingerprint []byte
}

const (
	fieldPage        protowire.Number = 1
	fieldPageSize    protowire.Number = 2
	fieldFingerprint protowire.Number = 3
)

// Matches reports whether the cursor was issued for fingerprint fp.
func (c PageCursor) Matches(fp []byte) bool {
	return len(c.Fingerprint) > 0 && bytes.Equal(c.Fingerprint, fp)
}

// EncodePage serializes c in protobuf wire format and base64url-encodes it.
func EncodePage(c PageCursor) string {
	var b []byte
	b = protowire.AppendTag(b, fieldPage, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(c.Page))
	b = protowire.AppendTag(b, fieldPageSize, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(c.PageSize))
	b = protowire.AppendTag(b, fieldFingerprint, protowire.BytesType)
	b = protowire.AppendBytes(b, c.Fingerprint)
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodePage parses a token produced by EncodePage. Unknown fields are skipped.
func DecodePage(token string) (PageCursor, error) {
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil || len(b) == 0 {
		return PageCursor{}, ErrInvalidToken
	}

	var c PageCursor
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return PageCursor{}, fmt.Errorf("%w: %v", ErrInvalidToken, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == fieldPage && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return PageCursor{}, ErrInvalidToken
			}
			if v > math.MaxInt32 {
				return PageCursor{}, ErrInvalidToken
			}
			c.Page = int(v)
			n = m
		case num == fieldPageSize && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return PageCursor{}, ErrInvalidToken
			}
			if v > math.MaxInt32 {
				return PageCursor{}, ErrInvalidToken
			}
			c.PageSize = int(v)
			n = m
		case num == fieldFingerprint && typ == protowire.BytesType:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return PageCursor{}, ErrInvalidToken
			}
			c.Fingerprint = bytes.Clone(v)
			n = m
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return PageCursor{}, ErrInvalidToken
			}
		}
		b = b[n:]
	}

	if c.Page < 1 || c.PageSize < 1 {
		return PageCursor{}, ErrInvalidToken
	}
	return c, nil
}

// KeysetCursor is the opaque keyset state for time-ordered lists (matches,
// admirers). PeerID + CreatedUnixNano establish a stable cursor.
// CreatedUnixNano is the full created_at, sub-millisecond digits included.
type KeysetCursor struct {
	PeerID          uint64 `json:"peer_id"`
	CreatedUnixNano int64  `json:"created_unix_nano,omitempty"`
}

// IsZero reports whether the cursor points at the first page.
func (c KeysetCursor) IsZero() bool { return c.PeerID == 0 && c.CreatedUnixNano == 0 }

// CreatedAt returns the cursor timestamp in UTC.
func (c KeysetCursor) CreatedAt() time.Time { return time.Unix(0, c.CreatedUnixNano).UTC() }

// EncodeKeyset converts a KeysetCursor into a Base64 string.
func EncodeKeyset(c KeysetCursor) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cursor: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// DecodeKeyset parses a Base64 string into a KeysetCursor.
// Empty token → empty cursor (first page).
func DecodeKeyset(token string) (KeysetCursor, error) {
	if token == "" {
		return KeysetCursor{}, nil
	}

	b, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return KeysetCursor{}, ErrInvalidToken
	}

	var c KeysetCursor
	if err := json.Unmarshal(b, &c); err != nil {
		return KeysetCursor{}, ErrInvalidToken
	}
	return c, nil
}
