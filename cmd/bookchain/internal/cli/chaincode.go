/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/zhang829-666/BookchainHF/pkg/client/chaincode"
)

func (a *app) chaincodeClient() (*chaincode.Client, error) {
	sdk, err := a.SDK()
	if err != nil {
		return nil, err
	}
	return sdk.ChaincodeClient()
}

// chaincodeParams parses key=value arguments in order. Values that are valid
// JSON (numbers, true, false, null, objects) keep their type, anything else
// is a string.
func chaincodeParams(args []string) (chaincode.Params, error) {
	var params chaincode.Params
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, errors.Errorf("expecting key=value, got [%s]", arg)
		}
		var value interface{}
		if err := json.Unmarshal([]byte(v), &value); err != nil {
			value = v
		}
		params = params.Set(k, value)
	}
	return params, nil
}

func (a *app) newChaincodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "chaincode",
		Aliases: []string{"cc"},
		Short:   "Invoke the book ownership chaincode",
	}

	printResponse := func(cmd *cobra.Command, resp *chaincode.Response, err error) error {
		if err != nil {
			return err
		}
		return a.print(cmd.OutOrStdout(), resp.Payload)
	}

	invoke := &cobra.Command{
		Use:   "invoke <function> [key=value...]",
		Short: "Invoke a chaincode function",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := chaincodeParams(args[1:])
			if err != nil {
				return err
			}
			cc, err := a.chaincodeClient()
			if err != nil {
				return err
			}
			resp, err := cc.InvokeChaincode(cmd.Context(), args[0], params)
			return printResponse(cmd, resp, err)
		},
	}

	create := &cobra.Command{
		Use:   "create-asset key=value...",
		Short: "Record a book asset, e.g. assetId=A1 owner=alice isBlindBox=true",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := chaincodeParams(args)
			if err != nil {
				return err
			}
			cc, err := a.chaincodeClient()
			if err != nil {
				return err
			}
			resp, err := cc.CreateBookAsset(cmd.Context(), params)
			return printResponse(cmd, resp, err)
		},
	}

	transfer := &cobra.Command{
		Use:   "transfer <assetId> <newOwner>",
		Short: "Transfer a book asset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := a.chaincodeClient()
			if err != nil {
				return err
			}
			resp, err := cc.TransferBookOwnership(cmd.Context(), args[0], args[1])
			return printResponse(cmd, resp, err)
		},
	}

	query := &cobra.Command{
		Use:   "query <assetId>",
		Short: "Read a book asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := a.chaincodeClient()
			if err != nil {
				return err
			}
			resp, err := cc.QueryBookAsset(cmd.Context(), args[0])
			return printResponse(cmd, resp, err)
		},
	}

	var assetType string
	queryAll := &cobra.Command{
		Use:   "query-all",
		Short: "List book assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := a.chaincodeClient()
			if err != nil {
				return err
			}
			resp, err := cc.QueryAllBookAssets(cmd.Context(), assetType)
			return printResponse(cmd, resp, err)
		},
	}
	queryAll.Flags().StringVar(&assetType, "type", "", "asset type, NORMAL or BLIND_BOX (default all)")

	cmd.AddCommand(invoke, create, transfer, query, queryAll)
	return cmd
}
