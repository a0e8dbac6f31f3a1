package invitations

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"huddle-backend/internal/pkg/constants"
)

// TokenIssuer creates invitation tokens from a cryptographically secure source.
type TokenIssuer struct {
	Random io.Reader // nil means crypto/rand
}

func (t *TokenIssuer) reader() io.Reader {
	if t == nil || t.Random == nil {
		return rand.Reader
	}
	return t.Random
}

// Issue returns one hex-encoded token of constants.InviteTokenBytes random bytes.
func (t *TokenIssuer) Issue() (string, error) {
	b := make([]byte, constants.InviteTokenBytes)
	if _, err := io.ReadFull(t.reader(), b); err != nil {
		return "", fmt.Errorf("read random token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// IssueN returns n tokens, index-aligned with the invitees they are issued for.
func (t *TokenIssuer) IssueN(n int) ([]string, error) {
	tokens := make([]string, n)
	for i := range tokens {
		tok, err := t.Issue()
		if err != nil {
			return nil, err
		}
		tokens[i] = tok
	}
	return tokens, nil
}
