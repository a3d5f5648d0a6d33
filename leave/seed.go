/*
seed.go - Demo request data

PURPOSE:
  Pre-built leave requests for demos and development, mirroring the mock
  data the product ships with. Loaded via Store.Replace; never used in
  production paths.

SEE ALSO:
  - identity: seeds the matching demo users
  - api/scenarios.go: loads seeds over HTTP
*/
package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeedRequests returns the demo request collection, newest-first.
func SeedRequests() []Request {
	return []Request{
		{
			ID:                  "seed-req-2",
			RequesterID:         "user-mariam",
			RequesterName:       "Mariam Ahmed",
			RequesterDepartment: "IT",
			Type:                TypeSick,
			StartDate:           NewDate(2025, time.January, 20),
			EndDate:             NewDate(2025, time.January, 20),
			Duration:            decimal.NewFromInt(1),
			Reason:              "Medical appointment",
			Status:              StatusPending,
			CreatedAt:           time.Date(2025, time.January, 18, 9, 15, 0, 0, time.UTC),
			UpdatedAt:           time.Date(2025, time.January, 18, 9, 15, 0, 0, time.UTC),
		},
		{
			ID:                  "seed-req-1",
			RequesterID:         "user-mariam",
			RequesterName:       "Mariam Ahmed",
			RequesterDepartment: "IT",
			Type:                TypeAnnual,
			StartDate:           NewDate(2025, time.January, 15),
			EndDate:             NewDate(2025, time.January, 17),
			Duration:            decimal.NewFromInt(3),
			Reason:              "Personal vacation",
			Status:              StatusApproved,
			CreatedAt:           time.Date(2025, time.January, 1, 10, 0, 0, 0, time.UTC),
			UpdatedAt:           time.Date(2025, time.January, 2, 14, 30, 0, 0, time.UTC),
		},
	}
}
