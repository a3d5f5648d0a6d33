package identity

import (
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/edhr/leave-engine/leave"
)

// SeedPassword is the password every demo account accepts.
const SeedPassword = "welcome1"

// seedUsers mirrors the demo directory the product ships with.
func seedUsers() []leave.User {
	return []leave.User{
		{
			ID:                 "user-mariam",
			Name:               "Mariam Ahmed",
			Email:              "mariam@ed.com",
			Role:               leave.RoleEmployee,
			Department:         "IT",
			AnnualLeaveBalance: decimal.NewFromInt(15),
		},
		{
			ID:                 "user-ahmed",
			Name:               "Ahmed Hassan",
			Email:              "ahmed@ed.com",
			Role:               leave.RoleManager,
			Department:         "IT",
			AnnualLeaveBalance: decimal.NewFromInt(21),
		},
		{
			ID:                 "user-sara",
			Name:               "Sara Mohamed",
			Email:              "sara@ed.com",
			Role:               leave.RoleHR,
			Department:         "HR",
			AnnualLeaveBalance: decimal.NewFromInt(21),
		},
	}
}

// Seed installs the demo accounts, replacing any existing entries with
// the same email. All demo accounts use SeedPassword.
func (d *Directory) Seed() error {
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for _, user := range seedUsers() {
		acct := &account{user: user, passwordHash: hash}
		d.byEmail[normalizeEmail(user.Email)] = acct
		d.byUserID[user.ID] = acct
	}
	return nil
}
