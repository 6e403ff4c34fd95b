package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/halotrubus/internal/constants"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestBuiltinRolesGateIntents(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	// 重复执行不报错
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}

	cases := []struct {
		role   string
		intent string
		want   bool
	}{
		{constants.RoleConsumer, constants.IntentCheckout, true},
		{constants.RoleConsumer, constants.IntentBooking, true},
		{constants.RoleExpert, constants.IntentCheckout, true},
		{constants.RoleExpert, constants.IntentBooking, true},
		{constants.RoleGuest, constants.IntentCheckout, false},
		{"", constants.IntentBooking, false},
		{constants.RoleConsumer, "refund", false},
	}
	for _, tc := range cases {
		if got := svc.Allow(tc.role, tc.intent); got != tc.want {
			t.Fatalf("allow(%q, %q) want %v got %v", tc.role, tc.intent, tc.want, got)
		}
	}
}

func TestGrantAndRevokeRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("guest", constants.IntentCheckout, "submit"); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	allow, err := svc.EnforceRole("guest", "checkout", "SUBMIT")
	if err != nil || !allow {
		t.Fatalf("expected allow after grant, allow=%v err=%v", allow, err)
	}

	policies, err := svc.GetRolePolicies("guest")
	if err != nil {
		t.Fatalf("get policies failed: %v", err)
	}
	if len(policies) != 1 || policies[0].Object != "/intents/checkout" || policies[0].Action != "SUBMIT" {
		t.Fatalf("unexpected policies: %+v", policies)
	}

	if err := svc.RevokeRolePolicy("guest", constants.IntentCheckout, "submit"); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if svc.Allow("guest", constants.IntentCheckout) {
		t.Fatalf("expected deny after revoke")
	}
}

func TestWildcardIntentPolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("expert", "*", "*"); err != nil {
		t.Fatalf("grant wildcard failed: %v", err)
	}
	if !svc.Allow("expert", "anything") {
		t.Fatalf("wildcard policy should allow any intent")
	}
	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:expert" {
		t.Fatalf("unexpected roles: %v", roles)
	}
}

func TestNormalizeHelpers(t *testing.T) {
	if got, _ := NormalizeRole(" Consumer "); got != "role:consumer" {
		t.Fatalf("unexpected role: %s", got)
	}
	if got, _ := NormalizeRole(""); got != "role:guest" {
		t.Fatalf("empty role should map to guest, got %s", got)
	}
	if got := ObjectForIntent("booking"); got != "/intents/booking" {
		t.Fatalf("unexpected object: %s", got)
	}
	if got := ObjectForIntent("/intents/booking"); got != "/intents/booking" {
		t.Fatalf("prefixed object should be kept, got %s", got)
	}
	if got := NormalizeAction(" submit "); got != "SUBMIT" {
		t.Fatalf("unexpected action: %s", got)
	}
}

func TestListRolePolicies(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	roles, err := svc.ListRolePolicies()
	if err != nil {
		t.Fatalf("list role policies failed: %v", err)
	}
	if len(roles) != 3 {
		t.Fatalf("want 3 builtin roles got %+v", roles)
	}
	consumer, expert, guest := roles[0], roles[1], roles[2]
	if consumer.Role != "role:consumer" || len(consumer.Policies) != 2 || len(consumer.Inherits) != 0 {
		t.Fatalf("unexpected consumer: %+v", consumer)
	}
	if consumer.Policies[0].Object != "/intents/booking" || consumer.Policies[1].Object != "/intents/checkout" {
		t.Fatalf("policies should be sorted by object: %+v", consumer.Policies)
	}
	if expert.Role != "role:expert" || len(expert.Policies) != 0 || len(expert.Inherits) != 1 || expert.Inherits[0] != "role:consumer" {
		t.Fatalf("expert should only inherit consumer: %+v", expert)
	}
	if guest.Role != "role:guest" || len(guest.Policies) != 0 {
		t.Fatalf("guest should have no policies: %+v", guest)
	}
}
