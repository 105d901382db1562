package domain

// Role controls what billing operations a staff member may perform.
type Role string

const (
	// RoleAdmin can manage fee schedules and rosters in addition to billing.
	RoleAdmin Role = "admin"
	// RoleBursar can enroll students and record payments.
	RoleBursar Role = "bursar"
	// RoleViewer has read-only access.
	RoleViewer Role = "viewer"
)

// User is an authenticated staff member. Account provisioning and sessions
// are owned by an external identity service; this service only verifies the
// token it issued.
type User struct {
	ID    string
	Email string
	Role  Role
}

// CanRecordBilling reports whether the role may mutate billing data.
func (r Role) CanRecordBilling() bool {
	return r == RoleAdmin || r == RoleBursar
}

// CanManageSchedule reports whether the role may edit fee schedules and rosters.
func (r Role) CanManageSchedule() bool {
	return r == RoleAdmin
}
