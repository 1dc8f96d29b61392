package authz

import (
	"fmt"

	"github.com/littlelemon-api/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Policies []Policy
}

// BuiltinRoleSeeds 系统预置角色矩阵。
// manager 放行全部路由；delivery_crew 仅订单的查看与状态更新；
// authenticated 覆盖所有登录用户可用的路由，细粒度归属判断在服务层完成。
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleManager,
			Policies: []Policy{
				{Object: "/*", Action: "*"},
			},
		},
		{
			Role: constants.RoleDeliveryCrew,
			Policies: []Policy{
				{Object: "/orders", Action: "GET"},
				{Object: "/orders/:id", Action: "GET"},
				{Object: "/orders/:id", Action: "PATCH"},
				{Object: "/users/me", Action: "GET"},
			},
		},
		{
			Role: constants.RoleAuthenticated,
			Policies: []Policy{
				{Object: "/users/me", Action: "GET"},
				{Object: "/cart/menu-items", Action: "GET"},
				{Object: "/cart/menu-items", Action: "POST"},
				{Object: "/cart/menu-items", Action: "DELETE"},
				{Object: "/cart/menu-items/:id", Action: "PUT"},
				{Object: "/orders", Action: "GET"},
				{Object: "/orders", Action: "POST"},
				{Object: "/orders/:id", Action: "GET"},
				{Object: "/orders/:id", Action: "PUT"},
				{Object: "/orders/:id", Action: "PATCH"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return err
		}
		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
