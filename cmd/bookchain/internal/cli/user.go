/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/zhang829-666/BookchainHF/pkg/client/user"
	"github.com/zhang829-666/BookchainHF/pkg/common/providers/bookchain"
	"github.com/zhang829-666/BookchainHF/pkg/util/uuidgen"
)

func (a *app) userClient() (*user.Client, error) {
	sdk, err := a.SDK()
	if err != nil {
		return nil, err
	}
	return sdk.UserClient()
}

func (a *app) newLoginCmd() *cobra.Command {
	var creds bookchain.LoginRequest
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if creds.Password == "" {
				creds.Password = a.settings.Password
			}
			if creds.Username == "" || creds.Password == "" {
				return errors.New("username and password are required")
			}
			users, err := a.userClient()
			if err != nil {
				return err
			}
			resp, err := users.Login(cmd.Context(), creds)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVarP(&creds.Username, "username", "u", "", "user name")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "password (env BOOKCHAIN_PASSWORD)")
	return cmd
}

func (a *app) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := a.userClient()
			if err != nil {
				return err
			}
			return users.Logout()
		},
	}
}

func (a *app) newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := a.userClient()
			if err != nil {
				return err
			}
			u, err := users.GetCurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), u)
		},
	}
}

func (a *app) newUUIDCmd() *cobra.Command {
	var local bool
	var prefix string
	cmd := &cobra.Command{
		Use:   "uuid",
		Short: "Generate an identifier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var id string
			switch {
			case prefix != "":
				var err error
				if id, err = uuidgen.Prefixed(prefix, 8); err != nil {
					return err
				}
			case local:
				id = uuidgen.New32()
			default:
				users, err := a.userClient()
				if err != nil {
					return err
				}
				if id, err = users.GenerateUUID(cmd.Context()); err != nil {
					return err
				}
			}
			return a.print(cmd.OutOrStdout(), map[string]string{"uuid": id})
		},
	}
	cmd.Flags().BoolVar(&local, "local", false, "generate locally instead of asking the backend")
	cmd.Flags().StringVar(&prefix, "prefix", "", "generate a short local id with this prefix")
	return cmd
}

func (a *app) newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts",
	}

	var reg bookchain.RegisterRequest
	register := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if reg.Password == "" {
				reg.Password = a.settings.Password
			}
			users, err := a.userClient()
			if err != nil {
				return err
			}
			u, err := users.Register(cmd.Context(), reg)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), u)
		},
	}
	register.Flags().StringVar(&reg.Email, "email", "", "e-mail address")
	register.Flags().StringVarP(&reg.Password, "password", "p", "", "password (env BOOKCHAIN_PASSWORD)")
	register.Flags().StringVar(&reg.RealName, "real-name", "", "real name")
	register.Flags().StringVar(&reg.Interests, "interests", "", "reading interests")

	get := &cobra.Command{
		Use:   "get <username>",
		Short: "Show a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := a.userClient()
			if err != nil {
				return err
			}
			u, err := users.GetUserByUsername(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), u)
		},
	}

	interests := &cobra.Command{
		Use:   "interests <interests>",
		Short: "Update the reading interests of the signed in user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := a.userClient()
			if err != nil {
				return err
			}
			return users.UpdateInterests(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(register, get, interests)
	return cmd
}
