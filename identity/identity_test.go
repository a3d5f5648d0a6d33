package identity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edhr/leave-engine/identity"
	"github.com/edhr/leave-engine/leave"
)

func TestDirectory_RegisterAndLogin(t *testing.T) {
	d := identity.NewDirectory()

	user, err := d.Register("Nour Adel", "nour@ed.com", "s3cret-pw", "Finance")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, leave.RoleEmployee, user.Role)
	assert.Equal(t, "Finance", user.Department)

	got, err := d.Login("nour@ed.com", "s3cret-pw")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	// Email lookup is case-insensitive
	_, err = d.Login("NOUR@ed.com", "s3cret-pw")
	assert.NoError(t, err)
}

func TestDirectory_LoginFailures(t *testing.T) {
	d := identity.NewDirectory()
	_, err := d.Register("Nour Adel", "nour@ed.com", "s3cret-pw", "Finance")
	require.NoError(t, err)

	_, err = d.Login("nour@ed.com", "wrong-password")
	assert.ErrorIs(t, err, identity.ErrInvalidCredentials)

	_, err = d.Login("nobody@ed.com", "s3cret-pw")
	assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
}

func TestDirectory_RegisterRejectsDuplicatesAndWeakPasswords(t *testing.T) {
	d := identity.NewDirectory()

	_, err := d.Register("Nour Adel", "nour@ed.com", "s3cret-pw", "Finance")
	require.NoError(t, err)

	_, err = d.Register("Other", "nour@ed.com", "another-pw", "IT")
	assert.ErrorIs(t, err, identity.ErrEmailTaken)

	_, err = d.Register("Short", "short@ed.com", "12345", "IT")
	assert.ErrorIs(t, err, identity.ErrWeakPassword)
}

func TestDirectory_Seed(t *testing.T) {
	d := identity.NewDirectory()
	require.NoError(t, d.Seed())

	manager, err := d.Login("ahmed@ed.com", identity.SeedPassword)
	require.NoError(t, err)
	assert.Equal(t, leave.RoleManager, manager.Role)

	hr, err := d.Lookup("user-sara")
	require.NoError(t, err)
	assert.Equal(t, leave.RoleHR, hr.Role)
	assert.Equal(t, "HR", hr.Department)
}

func TestSessions_IssueAndVerify(t *testing.T) {
	sessions := identity.NewSessions([]byte("test-secret"), time.Hour)
	user := leave.User{ID: "u1", Name: "Mariam Ahmed", Department: "IT", Role: leave.RoleEmployee}

	token, err := sessions.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := sessions.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "Mariam Ahmed", claims.Name)
	assert.Equal(t, "employee", claims.Role)
}

func TestSessions_RejectsForgedAndForeignTokens(t *testing.T) {
	sessions := identity.NewSessions([]byte("test-secret"), time.Hour)
	other := identity.NewSessions([]byte("different-secret"), time.Hour)
	user := leave.User{ID: "u1", Name: "Mariam Ahmed"}

	token, err := other.Issue(user)
	require.NoError(t, err)

	_, err = sessions.Verify(token)
	assert.ErrorIs(t, err, identity.ErrInvalidToken)

	_, err = sessions.Verify("not-a-token")
	assert.ErrorIs(t, err, identity.ErrInvalidToken)
}
