package domain

// User represents an authenticated API caller.
type User struct {
	ID   string
	Name string
	Role Role
}

// Role represents a caller's access level.
type Role string

const (
	// RoleOperator is bank staff: may flag accounts as fraudulent and
	// close them on top of everything a customer can do.
	RoleOperator Role = "operator"

	// RoleCustomer may open accounts, view balances and transfer funds,
	// but never edit account status flags.
	RoleCustomer Role = "customer"
)

var validRoles = map[Role]bool{
	RoleOperator: true,
	RoleCustomer: true,
}

// IsValid checks if the role is a known role.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanManageAccounts checks if the role may change account status flags.
func (r Role) CanManageAccounts() bool {
	return r == RoleOperator
}
