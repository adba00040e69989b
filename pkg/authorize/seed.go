package authorize

import (
	"context"
	"log/slog"
)

// DefaultPolicies is the baseline RBAC policy set.
var DefaultPolicies = []PermissionPolicy{
	{RoleSysSuperAdmin, DomainSys, WildcardResource, WildcardAction, EffectAllow},

	// dashboard admin: triage appointments, look up the people behind them
	{RoleSysAdmin, DomainSys, ResourceAppointment, WildcardAction, EffectAllow},
	{RoleSysAdmin, DomainSys, ResourcePatient, ActionRead, EffectAllow},
	{RoleSysAdmin, DomainSys, ResourceUser, ActionRead, EffectAllow},
	{RoleSysAdmin, DomainSys, ResourceAuthSession, WildcardAction, EffectAllow},
	{RoleSysAdmin, DomainSys, ResourceAudit, ActionRead, EffectAllow},

	{RoleSysSupport, DomainSys, ResourceAppointment, ActionRead, EffectAllow},
	{RoleSysSupport, DomainSys, ResourceAppointment, ActionList, EffectAllow},
	{RoleSysSupport, DomainSys, ResourcePatient, ActionRead, EffectAllow},

	// a user over their own records
	{RoleUserSelf, WildcardDomain, ResourceAppointment, ActionCreate, EffectAllow},
	{RoleUserSelf, WildcardDomain, ResourceAppointment, ActionRead, EffectAllow},
	{RoleUserSelf, WildcardDomain, ResourceAppointment, ActionList, EffectAllow},
	{RoleUserSelf, WildcardDomain, ResourceAppointment, ActionCancel, EffectAllow},
	{RoleUserSelf, WildcardDomain, ResourcePatient, ActionCreate, EffectAllow},
	{RoleUserSelf, WildcardDomain, ResourcePatient, ActionRead, EffectAllow},
	{RoleUserSelf, WildcardDomain, ResourceOTP, WildcardAction, EffectAllow},
}

// SeedDefaultPolicies installs DefaultPolicies and binds AdminSubject to
// the sys admin role. Safe to run repeatedly.
func SeedDefaultPolicies(ctx context.Context, auth IAuthorization) error {
	logger := slog.Default()

	for _, p := range DefaultPolicies {
		added, err := auth.AddPermission(ctx, p.Subject, p.Domain, p.Object, p.Action, p.Effect)
		if err != nil {
			logger.Error("failed to add policy", "policy", p, "error", err)
			return err
		}
		if added {
			logger.Debug("added policy", "role", p.Subject, "domain", p.Domain, "resource", p.Object, "action", p.Action)
		}
	}

	if err := AssignSystemRole(ctx, auth, AdminSubject, RoleSysAdmin); err != nil {
		return err
	}

	logger.Info("seeded default RBAC policies", "count", len(DefaultPolicies))
	return nil
}

// AssignUserSelfRole assigns role:user:self in the user's private domain.
// Called when a user record is created.
func AssignUserSelfRole(ctx context.Context, auth IAuthorization, userID string) error {
	_, err := auth.AddRoleForUserInDomain(ctx, GroupSubject(userID), RoleUserSelf, UserDomain(userID))
	return err
}

// AssignSystemRole assigns a sys-domain role.
func AssignSystemRole(ctx context.Context, auth IAuthorization, subject GroupSubject, role Role) error {
	switch role {
	case RoleSysSuperAdmin, RoleSysAdmin, RoleSysSupport:
	default:
		return ErrInvalidArgs
	}
	_, err := auth.AddRoleForUserInDomain(ctx, subject, role, DomainSys)
	return err
}

func RemoveSystemRole(ctx context.Context, auth IAuthorization, subject GroupSubject, role Role) error {
	_, err := auth.RemoveRoleForUserInDomain(ctx, subject, role, DomainSys)
	return err
}
