package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	jwttoken "medsim/internal/jwt_token"
	id "medsim/pkg/domain"
)

func newTokenCmd(st *state) *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token <identity>",
		Short: "Mint a bearer token for an identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := id.ParseIdentity(args[0])
			if err != nil {
				return err
			}
			if ttl <= 0 {
				ttl = st.cfg.Auth.TokenTTL
			}
			svc := jwttoken.NewJWTService(st.cfg.Auth.JWTSigningKey, st.cfg.Auth.JWTIssuer)
			token, err := svc.GenerateToken(caller, ttl)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to auth.token_ttl)")
	return cmd
}
