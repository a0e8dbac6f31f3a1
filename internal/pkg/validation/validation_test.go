package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("a@x.com"))
	assert.False(t, IsValidEmail("a@x"))
	assert.False(t, IsValidEmail("not an email"))
	assert.False(t, IsValidEmail(""))
}

func TestDomainFromEmail(t *testing.T) {
	assert.Equal(t, "x.com", DomainFromEmail("a@x.com"))
	assert.Equal(t, "QQ.com", DomainFromEmail("weird@name@QQ.com"))
	assert.Equal(t, "", DomainFromEmail("nodomain"))
}

func TestNormalizedDomain(t *testing.T) {
	assert.Equal(t, "qq.com", NormalizedDomain("Someone@QQ.COM "))
}
