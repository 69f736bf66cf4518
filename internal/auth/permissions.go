package auth

// Role is an employee's access level.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// Action names a mutating or privileged operation on a resource.
type Action string

const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionApprove Action = "approve"
	ActionRead    Action = "read"
)

// permissions maps (resource, action) to the set of roles allowed to perform
// it. Endpoints absent from the table are open to any authenticated user;
// ownership scoping still happens per handler.
var permissions = map[string]map[Action][]Role{
	"employees": {
		ActionCreate: {RoleAdmin, RoleHR},
		ActionDelete: {RoleAdmin},
	},
	"departments": {
		ActionCreate: {RoleAdmin},
	},
	"shift-templates": {
		ActionCreate: {RoleAdmin, RoleHR},
		ActionUpdate: {RoleAdmin, RoleHR},
		ActionDelete: {RoleAdmin},
	},
	"shifts": {
		ActionCreate: {RoleAdmin, RoleHR},
		ActionUpdate: {RoleAdmin, RoleHR},
		ActionDelete: {RoleAdmin},
	},
	"leave-requests": {
		ActionApprove: {RoleAdmin, RoleHR, RoleManager},
	},
	"reports/payroll": {
		ActionRead: {RoleAdmin, RoleHR},
	},
}

// Allowed consults the permission table. Unlisted (resource, action) pairs are
// permitted for any authenticated role.
func Allowed(role Role, resource string, action Action) bool {
	actions, ok := permissions[resource]
	if !ok {
		return true
	}
	roles, ok := actions[action]
	if !ok {
		return true
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// CanManage reports whether the role may act on records of other employees.
func CanManage(role Role) bool {
	return role == RoleAdmin || role == RoleHR
}
