/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the bookchain commands.
package cli

import (
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/zhang829-666/BookchainHF/pkg/bcsdk"
	"github.com/zhang829-666/BookchainHF/pkg/common/logging"
	"github.com/zhang829-666/BookchainHF/pkg/common/providers/core"
	"github.com/zhang829-666/BookchainHF/pkg/core/config"
	"github.com/zhang829-666/BookchainHF/pkg/fab"
	"github.com/zhang829-666/BookchainHF/pkg/fab/comm"
	"github.com/zhang829-666/BookchainHF/pkg/fab/keyvaluestore"
	"github.com/zhang829-666/BookchainHF/pkg/util/pathvar"
)

var logger = logging.NewLogger("bcsdk")

// Settings are read from the environment (and .env). Flags take precedence.
type Settings struct {
	Config   string `env:"BOOKCHAIN_CONFIG"`
	Output   string `env:"BOOKCHAIN_OUTPUT" envDefault:"json"`
	Home     string `env:"BOOKCHAIN_HOME"`
	Password string `env:"BOOKCHAIN_PASSWORD"`
}

type app struct {
	settings Settings
	sdkOpts  []bcsdk.Option
	sdk      *bcsdk.BookchainSDK
}

// NewRootCmd returns the bookchain command. opts are passed to every SDK
// the commands create.
func NewRootCmd(opts ...bcsdk.Option) *cobra.Command {
	a := &app{sdkOpts: opts}

	var configFlag, outputFlag string
	cmd := &cobra.Command{
		Use:   "bookchain",
		Short: "Command line client for the Bookchain book marketplace",
		Long: `bookchain talks to a Bookchain backend: it signs in, lists and uploads books,
trades blind boxes, invokes the book ownership chaincode and follows chaincode events.

The session token is kept under $BOOKCHAIN_HOME/credentials unless the SDK
config names a credential store.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional
			_ = godotenv.Load()

			if err := env.Parse(&a.settings); err != nil {
				return errors.Wrap(err, "parsing environment failed")
			}
			if cmd.Flags().Changed("config") {
				a.settings.Config = configFlag
			}
			if cmd.Flags().Changed("output") {
				a.settings.Output = outputFlag
			}
			a.settings.Output = strings.ToLower(a.settings.Output)
			if a.settings.Output == "" {
				a.settings.Output = outputJSON
			}
			if a.settings.Output != outputJSON && a.settings.Output != outputYAML {
				return errors.Errorf("unsupported output format [%s]", a.settings.Output)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.sdk != nil {
				a.sdk.Close()
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "SDK config file (env BOOKCHAIN_CONFIG)")
	cmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", outputJSON, "output format, json or yaml (env BOOKCHAIN_OUTPUT)")

	cmd.AddCommand(
		a.newLoginCmd(),
		a.newLogoutCmd(),
		a.newWhoamiCmd(),
		a.newUUIDCmd(),
		a.newUsersCmd(),
		a.newBooksCmd(),
		a.newBlindBoxCmd(),
		a.newChaincodeCmd(),
		a.newTxCmd(),
		a.newEventsCmd(),
	)
	return cmd
}

// SDK returns the SDK for the configured backend, creating it on first use
func (a *app) SDK() (*bcsdk.BookchainSDK, error) {
	if a.sdk != nil {
		return a.sdk, nil
	}

	provider := config.FromEnv()
	if a.settings.Config != "" {
		provider = config.FromFile(pathvar.Subst(a.settings.Config))
	}
	backends, err := provider()
	if err != nil {
		return nil, err
	}
	cfg, err := fab.ConfigFromBackend(backends...)
	if err != nil {
		return nil, err
	}

	var opts []bcsdk.Option
	if cfg.CredentialStorePath() == "" {
		tokens, err := a.homeTokenStore(cfg.ServerURL())
		if err != nil {
			return nil, err
		}
		opts = append(opts, bcsdk.WithTokenStore(tokens))
	}
	opts = append(opts, a.sdkOpts...)

	sdk, err := bcsdk.New(func() ([]core.ConfigBackend, error) { return backends, nil }, opts...)
	if err != nil {
		return nil, err
	}
	a.sdk = sdk
	return sdk, nil
}

// homeTokenStore keeps the session token under the bookchain home so that
// it survives between invocations
func (a *app) homeTokenStore(serverURL string) (*comm.KVTokenStore, error) {
	home := a.settings.Home
	if home == "" {
		home = pathvar.Subst("${BOOKCHAIN_HOME}")
	}
	path := filepath.Join(home, "credentials")
	logger.Debugf("session token is kept under %s", path)

	store, err := keyvaluestore.New(&keyvaluestore.FileKeyValueStoreOptions{
		Path:         path,
		Unmarshaller: keyvaluestore.StringUnmarshaller,
	})
	if err != nil {
		return nil, err
	}
	return comm.NewKVTokenStore(store, comm.TokenKey(serverURL))
}
