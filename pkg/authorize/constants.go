package authorize

import (
	"regexp"
	"strings"
)

type Action string
type Resource string
type Role string
type Domain string

// ----------------------------
// Actions
// ----------------------------

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionList   Action = "list"

	// Appointment lifecycle
	ActionSchedule Action = "schedule"
	ActionCancel   Action = "cancel"

	// RBAC-specific actions
	ActionGrant  Action = "grant"
	ActionRevoke Action = "revoke"
)

const (
	WildcardAction Action = "*"
)

var KnownActions = map[Action]struct{}{
	ActionCreate: {}, ActionRead: {}, ActionUpdate: {}, ActionList: {},
	ActionSchedule: {}, ActionCancel: {},
	ActionGrant: {}, ActionRevoke: {},
}

// ----------------------------
// Resources
// ----------------------------

const (
	WildcardResource Resource = "*"

	// Identity / auth
	ResourceUser        Resource = "user"
	ResourceAuthSession Resource = "auth_session"
	ResourceOTP         Resource = "otp"

	// Clinical records
	ResourcePatient     Resource = "patient"
	ResourceAppointment Resource = "appointment"

	// Platform
	ResourceSystem Resource = "system"
	ResourceAudit  Resource = "audit"
	ResourceRBAC   Resource = "rbac"
)

var KnownResources = map[Resource]struct{}{
	ResourceUser: {}, ResourceAuthSession: {}, ResourceOTP: {},
	ResourcePatient: {}, ResourceAppointment: {},
	ResourceSystem: {}, ResourceAudit: {}, ResourceRBAC: {},
}

// ----------------------------
// Roles
// ----------------------------

const (
	WildcardRole Role = "*"

	// domain = sys
	RoleSysSuperAdmin Role = "role:sys:superadmin"
	RoleSysAdmin      Role = "role:sys:admin"
	RoleSysSupport    Role = "role:sys:support"

	// domain = user:<id>
	RoleUserSelf Role = "role:user:self"
)

var KnownRoles = map[Role]struct{}{
	RoleSysSuperAdmin: {},
	RoleSysAdmin:      {},
	RoleSysSupport:    {},
	RoleUserSelf:      {},
}

// AdminSubject is the principal behind every passkey dashboard session.
const AdminSubject GroupSubject = "admin"

// ----------------------------
// Domains
// ----------------------------

const (
	DomainSys        Domain = "sys"
	DomainPrefixUser Domain = "user:"
	WildcardDomain   Domain = "*"
)

// user ids are Mongo ObjectIDs
var reObjectID = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

func UserDomain(userID string) Domain {
	return DomainPrefixUser + Domain(userID)
}

// IsValidDomain checks whether d is a recognised domain string.
func IsValidDomain(d Domain) bool {
	if d == DomainSys || d == WildcardDomain {
		return true
	}
	id, ok := strings.CutPrefix(string(d), string(DomainPrefixUser))
	return ok && reObjectID.MatchString(id)
}

// ----------------------------
// Casbin tuple helpers
// ----------------------------

type PolicyEffect string

const (
	EffectAllow PolicyEffect = "allow"
	EffectDeny  PolicyEffect = "deny"
)

// GroupSubject is the g.sub in Casbin: a concrete principal id.
type GroupSubject string

// Permission rows: p, role, domain, resource, action, eft
type PermissionPolicy struct {
	Subject Role
	Domain  Domain
	Object  Resource
	Action  Action
	Effect  PolicyEffect
}
