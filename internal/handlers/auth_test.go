package handlers

import (
	"testing"

	"github.com/sauti-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestApplyProviderClaimsRefreshesFields(t *testing.T) {
	user := &models.User{Name: "Old Name", Email: "old@example.com"}

	applyProviderClaims(user, "new@example.com", "New Name")
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, "New Name", user.Name)
}

func TestApplyProviderClaimsNeverBlanksStoredFields(t *testing.T) {
	// Phone and anonymous sign-ins carry no email or name claim; a repeat
	// login must not wipe what we already store.
	user := &models.User{Name: "Amina", Email: "amina@example.com"}

	applyProviderClaims(user, "", "")
	assert.Equal(t, "amina@example.com", user.Email)
	assert.Equal(t, "Amina", user.Name)
}
