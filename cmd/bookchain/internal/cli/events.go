/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhang829-666/BookchainHF/pkg/client/event"
	"github.com/zhang829-666/BookchainHF/pkg/common/errors/status"
)

func (a *app) newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Follow chaincode events",
	}

	var filter, eventURL string
	listen := &cobra.Command{
		Use:   "listen",
		Short: "Print chaincode events until interrupted or disconnected",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sdk, err := a.SDK()
			if err != nil {
				return err
			}

			disconnected := make(chan error, 1)
			opts := []event.ClientOption{
				event.WithErrorHandler(func(err error) {
					if s, ok := status.FromError(err); ok && s.Group == status.EventServerStatus && s.Code == status.ConnectionClosed.ToInt32() {
						select {
						case disconnected <- err:
						default:
						}
						return
					}
					fmt.Fprintf(cmd.ErrOrStderr(), "event error: %s\n", err)
				}),
			}
			if filter != "" {
				opts = append(opts, event.WithEventFilter(filter))
			}
			if eventURL != "" {
				opts = append(opts, event.WithEventURL(eventURL))
			}

			ec, err := sdk.EventClient(opts...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			dispose, err := ec.ListenToChaincodeEvents(func(e interface{}) {
				if err := a.print(out, e); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "event error: %s\n", err)
				}
			})
			if err != nil {
				return err
			}
			defer dispose()

			select {
			case <-cmd.Context().Done():
				return nil
			case err := <-disconnected:
				return err
			}
		},
	}
	listen.Flags().StringVar(&filter, "filter", "", "only print events matching the expression, e.g. \"type == 'BLIND_BOX'\"")
	listen.Flags().StringVar(&eventURL, "url", "", "event socket URL (default from config)")

	cmd.AddCommand(listen)
	return cmd
}
