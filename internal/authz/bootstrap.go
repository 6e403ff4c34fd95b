package authz

import (
	"fmt"

	"github.com/halotrubus/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Intents  []string
}

// BuiltinRoleSeeds 预置角色矩阵：访客无受保护操作，专家继承消费者
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{Role: constants.RoleGuest},
		{
			Role:    constants.RoleConsumer,
			Intents: []string{constants.IntentCheckout, constants.IntentBooking},
		},
		{
			Role:     constants.RoleExpert,
			Inherits: []string{constants.RoleConsumer},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略，可重复执行
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return err
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}

		for _, intent := range seed.Intents {
			if _, err := s.enforcer.AddPolicy(role, ObjectForIntent(intent), NormalizeAction(constants.ActionSubmit)); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
