package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/satheeshds/buildledger/internal/auth"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for local development",
	Long: `Sign a session token with JWT_SECRET so the API can be called with authentication enabled.

Required environment variables:
  JWT_SECRET - HMAC secret shared with the server`,
	Example: `  buildledger token --tenant acme --role manager --email pm@acme.test`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.AuthEnabled() {
			return fmt.Errorf("JWT_SECRET environment variable is required")
		}
		tenant, _ := cmd.Flags().GetString("tenant")
		if tenant == "" {
			tenant = cfg.DevTenantID
		}
		user, _ := cmd.Flags().GetString("user")
		if user == "" {
			user = uuid.NewString()
		}
		email, _ := cmd.Flags().GetString("email")
		role, _ := cmd.Flags().GetString("role")

		token, err := auth.New(cfg.JWTSecret, cfg.TokenTTL).Issue(auth.Session{
			UserID:   user,
			TenantID: tenant,
			Email:    email,
			Role:     role,
		})
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().String("tenant", "", "Tenant ID (default: DEV_TENANT_ID)")
	tokenCmd.Flags().String("user", "", "User ID (default: random)")
	tokenCmd.Flags().String("email", "", "Email address")
	tokenCmd.Flags().String("role", "admin", "Role (owner, admin, manager, member)")
}
