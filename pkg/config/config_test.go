package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAdminEmails(t *testing.T) {
	emails := parseAdminEmails(" Mod@Example.com , other@example.com ,, ")
	assert.Equal(t, []string{"mod@example.com", "other@example.com"}, emails)

	assert.Nil(t, parseAdminEmails(""))
}

func TestIsAdminEmailCaseInsensitive(t *testing.T) {
	cfg := &Config{AdminEmails: []string{"mod@example.com"}}

	assert.True(t, cfg.IsAdminEmail("mod@example.com"))
	assert.True(t, cfg.IsAdminEmail("MOD@EXAMPLE.COM"))
	assert.True(t, cfg.IsAdminEmail("  mod@example.com  "))
	assert.False(t, cfg.IsAdminEmail("someone@example.com"))
}

func TestIsAdminEmailEmptyAllowList(t *testing.T) {
	cfg := &Config{}

	assert.False(t, cfg.IsAdminEmail("mod@example.com"))
	assert.False(t, cfg.IsAdminEmail(""))
}
