package entity

// Role represents a user role in the system
type Role string

// Role constants
const (
	RoleAdmin   Role = "admin"
	RolePatient Role = "patient"
	RoleMHWP    Role = "mhwp"
)

// Capability is a permission granted to a role
type Capability uint8

const (
	CapMenu Capability = 1 << iota
	CapEditOwnProfile
	CapEditOthers
	CapClinicalWrite
)

var roleCapabilities = map[Role]Capability{
	RoleAdmin:   CapMenu | CapEditOthers,
	RolePatient: CapMenu | CapEditOwnProfile,
	RoleMHWP:    CapMenu | CapClinicalWrite,
}

// Capabilities returns the capability set granted to the role
func (r Role) Capabilities() Capability {
	return roleCapabilities[r]
}

// Can checks whether the role holds the given capability
func (r Role) Can(c Capability) bool {
	return r.Capabilities()&c == c
}

// Valid reports whether r is one of the three known roles
func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}
