package domain

import "time"

// Role is a member's tier within a company. Roles form a strict hierarchy;
// every "role X or above" check goes through AtLeast rather than comparing strings.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleTeller  Role = "teller"
)

var roleLevels = map[Role]int{
	RoleOwner:   4,
	RoleAdmin:   3,
	RoleManager: 2,
	RoleTeller:  1,
}

// Level returns the ordinal rank of the role; unknown roles rank below teller.
func (r Role) Level() int {
	return roleLevels[r]
}

// AtLeast reports whether r ranks at or above the required role.
func (r Role) AtLeast(required Role) bool {
	return r.Level() >= required.Level()
}

// Membership links a user to a company with a role. This is the multi-tenancy
// join record; a user may belong to several companies under different roles.
type Membership struct {
	MembershipID string    `json:"membershipID"`
	UserID       string    `json:"userID"`
	CompanyID    string    `json:"companyID"`
	Role         Role      `json:"role"`
	BranchID     *string   `json:"branchID,omitempty"`
	IsActive     bool      `json:"isActive"`
	JoinedAt     time.Time `json:"joinedAt"`
}

// Actor is the resolved identity and tenant context every ledger operation
// receives explicitly. It is produced at the transport boundary and passed as
// a parameter, never read from ambient state.
type Actor struct {
	UserID    string
	CompanyID string
	BranchID  *string
	Role      Role
}
