package domain

// Role user role as reported by the user directory
type Role string

const (
	RoleStudent  Role = "student"
	RoleFaculty  Role = "faculty"
	RoleAdmin    Role = "admin"
	RoleDisabled Role = "disabled"
	RoleVisitor  Role = "visitor"
)

// ParseRole converts a raw string into a known role
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	switch r {
	case RoleStudent, RoleFaculty, RoleAdmin, RoleDisabled, RoleVisitor:
		return r, true
	}
	return "", false
}

// IsValid returns true for a known role
func (r Role) IsValid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// CanUse returns true if a user with this role may book a slot reserved for category.
// general is open to everyone, faculty and student slots are also open to admins,
// disabled and visitor slots only to the matching role.
func (r Role) CanUse(category ReservedFor) bool {
	switch category {
	case ReservedGeneral:
		return true
	case ReservedFaculty:
		return r == RoleFaculty || r == RoleAdmin
	case ReservedStudent:
		return r == RoleStudent || r == RoleAdmin
	case ReservedDisabled:
		return r == RoleDisabled
	case ReservedVisitor:
		return r == RoleVisitor
	}
	return false
}

// Permission a single capability
type Permission string

const (
	PermCreateBooking    Permission = "create_booking"
	PermViewOwnBookings  Permission = "view_own_bookings"
	PermCancelOwnBooking Permission = "cancel_own_booking"
	PermViewAllBookings  Permission = "view_all_bookings"
	PermCancelAnyBooking Permission = "cancel_any_booking"
	PermManageSlots      Permission = "manage_slots"
	PermRunMaintenance   Permission = "run_maintenance"
)

// PermissionSet set of permissions
type PermissionSet map[Permission]struct{}

// Has checks membership
func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

func newPermissionSet(perms ...Permission) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// PermissionsFor returns the permissions granted to a role; unknown roles get none
func PermissionsFor(role Role) PermissionSet {
	switch role {
	case RoleAdmin:
		return newPermissionSet(
			PermCreateBooking,
			PermViewOwnBookings,
			PermCancelOwnBooking,
			PermViewAllBookings,
			PermCancelAnyBooking,
			PermManageSlots,
			PermRunMaintenance,
		)
	case RoleStudent, RoleFaculty, RoleDisabled, RoleVisitor:
		return newPermissionSet(
			PermCreateBooking,
			PermViewOwnBookings,
			PermCancelOwnBooking,
		)
	}
	return newPermissionSet()
}

// IsAdmin shortcut for the admin override checks
func (r Role) IsAdmin() bool {
	return PermissionsFor(r).Has(PermCancelAnyBooking)
}
