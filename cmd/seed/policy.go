package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/halotrubus/internal/authz"
	"github.com/halotrubus/internal/constants"
	"github.com/halotrubus/internal/logger"
	"github.com/halotrubus/internal/models"

	"github.com/spf13/cobra"
)

// openPolicyService 连接数据库并确保预置角色存在
var openPolicyService = func() (*authz.Service, error) {
	if _, err := openDatabase(); err != nil {
		return nil, err
	}
	svc, err := authz.NewService(models.DB)
	if err != nil {
		return nil, err
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		return nil, err
	}
	return svc, nil
}

func policyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Inspect or change which roles may check out and book consultations",
	}
	cmd.AddCommand(
		policyListCmd(),
		policyChangeCmd("grant", "Allow a role to submit an intent", func(svc *authz.Service, role, intent string) error {
			return svc.GrantRolePolicy(role, intent, constants.ActionSubmit)
		}),
		policyChangeCmd("revoke", "Stop a role from submitting an intent", func(svc *authz.Service, role, intent string) error {
			return svc.RevokeRolePolicy(role, intent, constants.ActionSubmit)
		}),
	)
	return cmd
}

func policyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every role with its inherited roles and intents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openPolicyService()
			if err != nil {
				return err
			}
			roles, err := svc.ListRolePolicies()
			if err != nil {
				return err
			}
			printPolicies(cmd.OutOrStdout(), roles)
			return nil
		},
	}
}

func policyChangeCmd(use, short string, apply func(svc *authz.Service, role, intent string) error) *cobra.Command {
	var role, intent string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openPolicyService()
			if err != nil {
				return err
			}
			if err := apply(svc, role, intent); err != nil {
				return err
			}
			logger.Infow("gate_policy_changed", "op", use, "role", role, "intent", intent)
			normalized, _ := authz.NormalizeRole(role)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s %s\n", use, normalized, authz.ObjectForIntent(intent))
			// API 进程启动时加载策略
			fmt.Fprintln(out, "restart the API process to apply the change")
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "role name, e.g. guest, consumer, expert")
	cmd.Flags().StringVar(&intent, "intent", "", "checkout, booking or *")
	_ = cmd.MarkFlagRequired("role")
	_ = cmd.MarkFlagRequired("intent")
	return cmd
}

func printPolicies(w io.Writer, roles []authz.RolePolicies) {
	for _, role := range roles {
		inherits := "-"
		if len(role.Inherits) > 0 {
			inherits = strings.Join(role.Inherits, ",")
		}
		intents := make([]string, 0, len(role.Policies))
		for _, p := range role.Policies {
			intents = append(intents, p.Object+" "+p.Action)
		}
		if len(intents) == 0 {
			intents = append(intents, "-")
		}
		fmt.Fprintf(w, "%-16s inherits=%s intents=%s\n", role.Role, inherits, strings.Join(intents, ", "))
	}
}
