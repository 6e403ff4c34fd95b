package authz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/halotrubus/internal/constants"
	"github.com/halotrubus/internal/logger"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/util"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const (
	intentPrefix    = "/intents"
	casbinTableName = "casbin_rule"
	rolePrefix      = "role:"
	roleAnchor      = "role:__anchor__"
)

const defaultRBACModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (g(r.sub, p.sub) || r.sub == p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

// Policy 门禁策略
type Policy struct {
	Subject string `json:"subject"`
	Object  string `json:"object"`
	Action  string `json:"action"`
}

// Service Casbin 门禁服务
// 判断某个角色能否执行受保护的会话操作（结算、预约提交）
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService 创建门禁服务
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("authz db is nil")
	}

	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", casbinTableName)
	if err != nil {
		return nil, fmt.Errorf("create authz adapter failed: %w", err)
	}

	m, err := model.NewModelFromString(defaultRBACModel)
	if err != nil {
		return nil, fmt.Errorf("load authz model failed: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("init authz enforcer failed: %w", err)
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)
	enforcer.EnableAutoSave(true)

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load authz policy failed: %w", err)
	}

	return &Service{enforcer: enforcer}, nil
}

// Enforce 执行授权判断
func (s *Service) Enforce(sub, obj, act string) (bool, error) {
	if s == nil || s.enforcer == nil {
		return false, fmt.Errorf("authz service unavailable")
	}
	return s.enforcer.Enforce(strings.TrimSpace(sub), NormalizeObject(obj), NormalizeAction(act))
}

// EnforceRole 按会话角色判定
func (s *Service) EnforceRole(role, intent, action string) (bool, error) {
	subject, err := NormalizeRole(role)
	if err != nil {
		return false, err
	}
	return s.Enforce(subject, ObjectForIntent(intent), action)
}

// Allow 会话门禁入口，判定失败一律拒绝
func (s *Service) Allow(role, intent string) bool {
	allowed, err := s.EnforceRole(role, intent, constants.ActionSubmit)
	if err != nil {
		logger.Warnw("authz_enforce_failed", "role", role, "intent", intent, "error", err)
		return false
	}
	if !allowed {
		logger.Infow("authz_denied", "role", role, "intent", intent)
	}
	return allowed
}

// EnsureRole 确保角色存在
func (s *Service) EnsureRole(role string) (string, error) {
	normalized, err := NormalizeRole(role)
	if err != nil {
		return "", err
	}
	if s == nil || s.enforcer == nil {
		return "", fmt.Errorf("authz service unavailable")
	}
	if normalized == roleAnchor {
		return "", fmt.Errorf("reserved role is not allowed")
	}

	exists, err := s.enforcer.HasNamedGroupingPolicy("g", normalized, roleAnchor)
	if err != nil {
		return "", fmt.Errorf("check role failed: %w", err)
	}
	if exists {
		return normalized, nil
	}
	if _, err := s.enforcer.AddNamedGroupingPolicy("g", normalized, roleAnchor); err != nil {
		return "", fmt.Errorf("create role failed: %w", err)
	}
	return normalized, nil
}

// ListRoles 列出角色
func (s *Service) ListRoles() ([]string, error) {
	if s == nil || s.enforcer == nil {
		return nil, fmt.Errorf("authz service unavailable")
	}
	rules, err := s.enforcer.GetFilteredNamedGroupingPolicy("g", 0)
	if err != nil {
		return nil, fmt.Errorf("list roles failed: %w", err)
	}
	roleSet := make(map[string]struct{})
	for _, rule := range rules {
		for _, item := range rule {
			if strings.HasPrefix(item, rolePrefix) && item != roleAnchor {
				roleSet[item] = struct{}{}
			}
		}
	}
	roles := make([]string, 0, len(roleSet))
	for role := range roleSet {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles, nil
}

// GrantRolePolicy 为角色授予操作
func (s *Service) GrantRolePolicy(role, intent, action string) error {
	normalizedRole, err := s.EnsureRole(role)
	if err != nil {
		return err
	}
	normalizedAction := NormalizeAction(action)
	if normalizedAction == "" {
		return fmt.Errorf("action is required")
	}
	if _, err := s.enforcer.AddPolicy(normalizedRole, ObjectForIntent(intent), normalizedAction); err != nil {
		return fmt.Errorf("grant policy failed: %w", err)
	}
	return nil
}

// RevokeRolePolicy 撤销角色操作
func (s *Service) RevokeRolePolicy(role, intent, action string) error {
	normalizedRole, err := NormalizeRole(role)
	if err != nil {
		return err
	}
	normalizedAction := NormalizeAction(action)
	if normalizedAction == "" {
		return fmt.Errorf("action is required")
	}
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}
	if _, err := s.enforcer.RemovePolicy(normalizedRole, ObjectForIntent(intent), normalizedAction); err != nil {
		return fmt.Errorf("revoke policy failed: %w", err)
	}
	return nil
}

// GetRolePolicies 查询角色直连策略
func (s *Service) GetRolePolicies(role string) ([]Policy, error) {
	normalizedRole, err := NormalizeRole(role)
	if err != nil {
		return nil, err
	}
	if s == nil || s.enforcer == nil {
		return nil, fmt.Errorf("authz service unavailable")
	}
	rules, err := s.enforcer.GetFilteredPolicy(0, normalizedRole)
	if err != nil {
		return nil, fmt.Errorf("get role policies failed: %w", err)
	}
	return convertPolicies(rules), nil
}

// RolePolicies 角色及其直连策略与继承关系
type RolePolicies struct {
	Role     string   `json:"role"`
	Inherits []string `json:"inherits"`
	Policies []Policy `json:"policies"`
}

// ListRolePolicies 列出全部角色的门禁策略，只读
func (s *Service) ListRolePolicies() ([]RolePolicies, error) {
	roles, err := s.ListRoles()
	if err != nil {
		return nil, err
	}
	result := make([]RolePolicies, 0, len(roles))
	for _, role := range roles {
		policies, err := s.GetRolePolicies(role)
		if err != nil {
			return nil, err
		}
		links, err := s.enforcer.GetFilteredNamedGroupingPolicy("g", 0, role)
		if err != nil {
			return nil, fmt.Errorf("list role inheritance failed: %w", err)
		}
		inherits := make([]string, 0, len(links))
		for _, link := range links {
			if len(link) > 1 && link[1] != roleAnchor {
				inherits = append(inherits, link[1])
			}
		}
		sort.Strings(inherits)
		result = append(result, RolePolicies{Role: role, Inherits: inherits, Policies: policies})
	}
	return result, nil
}

func convertPolicies(rules [][]string) []Policy {
	policies := make([]Policy, 0, len(rules))
	for _, rule := range rules {
		if len(rule) < 3 {
			continue
		}
		policies = append(policies, Policy{
			Subject: strings.TrimSpace(rule[0]),
			Object:  NormalizeObject(rule[1]),
			Action:  NormalizeAction(rule[2]),
		})
	}
	sort.Slice(policies, func(i, j int) bool {
		if policies[i].Object == policies[j].Object {
			return policies[i].Action < policies[j].Action
		}
		return policies[i].Object < policies[j].Object
	})
	return policies
}

// NormalizeRole 统一角色名称，空角色视为访客
func NormalizeRole(role string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(role))
	if normalized == "" {
		normalized = constants.RoleGuest
	}
	normalized = strings.ReplaceAll(normalized, " ", "_")
	if !strings.HasPrefix(normalized, rolePrefix) {
		normalized = rolePrefix + normalized
	}
	if len(normalized) <= len(rolePrefix) {
		return "", fmt.Errorf("role is required")
	}
	return normalized, nil
}

// ObjectForIntent 操作名映射为资源路径，例如 checkout -> /intents/checkout
func ObjectForIntent(intent string) string {
	normalized := strings.Trim(strings.TrimSpace(intent), "/")
	if normalized == "" || normalized == "*" {
		return intentPrefix + "/*"
	}
	if strings.HasPrefix(normalized, strings.TrimPrefix(intentPrefix, "/")+"/") {
		return "/" + normalized
	}
	return intentPrefix + "/" + normalized
}

// NormalizeObject 统一资源路径
func NormalizeObject(object string) string {
	normalized := strings.TrimSpace(object)
	if normalized == "" {
		return "/"
	}
	if !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}
	return normalized
}

// NormalizeAction 统一动作
func NormalizeAction(action string) string {
	return strings.ToUpper(strings.TrimSpace(action))
}
