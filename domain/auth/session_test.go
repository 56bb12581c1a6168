package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessions_IssueAndVerify(t *testing.T) {
	sessions := NewSessions("test-secret")

	token, err := sessions.Issue("operator")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := sessions.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "operator", claims.Username)
	assert.Equal(t, AdminRole, claims.Role)
}

func TestSessions_ExpiryWindow(t *testing.T) {
	issuedAt := time.Now()

	sessions := NewSessions("test-secret").WithTimeFunc(func() time.Time { return issuedAt })

	token, err := sessions.Issue("operator")
	assert.NoError(t, err)

	t.Run("accepted one day after issuance", func(t *testing.T) {
		sessions.WithTimeFunc(func() time.Time { return issuedAt.Add(24 * time.Hour) })

		_, err := sessions.Verify(token)
		assert.NoError(t, err)
	})

	t.Run("rejected eight days after issuance", func(t *testing.T) {
		sessions.WithTimeFunc(func() time.Time { return issuedAt.Add(8 * 24 * time.Hour) })

		_, err := sessions.Verify(token)
		assert.Error(t, err)
	})
}

func TestSessions_RejectsForeignSignature(t *testing.T) {
	token, err := NewSessions("secret-a").Issue("operator")
	assert.NoError(t, err)

	_, err = NewSessions("secret-b").Verify(token)
	assert.Error(t, err)
}

func TestSessions_RejectsGarbage(t *testing.T) {
	sessions := NewSessions("test-secret")

	_, err := sessions.Verify("not-a-token")
	assert.Error(t, err)
}
