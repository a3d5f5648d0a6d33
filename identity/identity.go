/*
Package identity supplies the current authenticated user for the leave
engine. Authentication is intentionally mocked: a seeded in-memory user
directory stands in for a real identity provider, the same way the
product it fronts keeps its users in local storage.

COMPONENTS:
  Directory: registered users keyed by email, bcrypt password hashes
  Sessions:  signed JWT session tokens (see token.go)

The leave store never authenticates on its own; it only snapshots the
User this package resolves.
*/
package identity

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/edhr/leave-engine/leave"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrUserNotFound       = errors.New("user not found")
)

// =============================================================================
// DIRECTORY
// =============================================================================

type account struct {
	user         leave.User
	passwordHash []byte
}

// Directory is the in-memory user store.
type Directory struct {
	mu       sync.RWMutex
	byEmail  map[string]*account
	byUserID map[string]*account
}

func NewDirectory() *Directory {
	return &Directory{
		byEmail:  make(map[string]*account),
		byUserID: make(map[string]*account),
	}
}

// Register creates a new employee account. New users start with the
// standard 21-day annual balance.
func (d *Directory) Register(name, email, password, department string) (leave.User, error) {
	if len(password) < 6 {
		return leave.User{}, ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return leave.User{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	key := normalizeEmail(email)
	if _, exists := d.byEmail[key]; exists {
		return leave.User{}, ErrEmailTaken
	}

	user := leave.User{
		ID:                 uuid.NewString(),
		Name:               name,
		Email:              email,
		Role:               leave.RoleEmployee,
		Department:         department,
		AnnualLeaveBalance: decimal.NewFromInt(21),
	}
	acct := &account{user: user, passwordHash: hash}
	d.byEmail[key] = acct
	d.byUserID[user.ID] = acct
	return user, nil
}

// Login verifies credentials and returns the matching user.
func (d *Directory) Login(email, password string) (leave.User, error) {
	d.mu.RLock()
	acct, ok := d.byEmail[normalizeEmail(email)]
	d.mu.RUnlock()
	if !ok {
		// Burn a comparison anyway so missing accounts cost the same.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return leave.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(password)); err != nil {
		return leave.User{}, ErrInvalidCredentials
	}
	return acct.user, nil
}

// Lookup returns a user by id.
func (d *Directory) Lookup(userID string) (leave.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	acct, ok := d.byUserID[userID]
	if !ok {
		return leave.User{}, ErrUserNotFound
	}
	return acct.user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var dummyHash = func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("timing-equalizer"), bcrypt.MinCost)
	return h
}()
