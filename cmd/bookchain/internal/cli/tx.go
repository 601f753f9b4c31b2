/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/zhang829-666/BookchainHF/pkg/common/providers/bookchain"
)

func (a *app) newTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transactions"},
		Short:   "Look up ownership transactions",
	}

	status := &cobra.Command{
		Use:   "status <txHash>",
		Short: "Show the ledger status of a chaincode transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := a.chaincodeClient()
			if err != nil {
				return err
			}
			s, err := cc.GetTransactionStatus(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), s)
		},
	}

	get := &cobra.Command{
		Use:   "get <txHash>",
		Short: "Show the transaction recorded for a hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := a.bookClient()
			if err != nil {
				return err
			}
			tx, err := books.GetBlockchainTransaction(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), tx)
		},
	}

	var (
		page     int
		txType   string
		from, to string
	)
	mine := &cobra.Command{
		Use:   "mine",
		Short: "List the transactions of the signed in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var dateRange []string
			if from != "" || to != "" {
				dateRange = []string{from, to}
			}
			users, err := a.userClient()
			if err != nil {
				return err
			}
			l, err := users.GetUserTransactions(cmd.Context(), page, txType, dateRange)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), l)
		},
	}
	mine.Flags().IntVar(&page, "page", 1, "page number")
	mine.Flags().StringVar(&txType, "type", "", "transaction type")
	mine.Flags().StringVar(&from, "from", "", "start date, e.g. 2024-01-01")
	mine.Flags().StringVar(&to, "to", "", "end date, e.g. 2024-01-31")

	filter := &cobra.Command{
		Use:   "filter <transactionType>",
		Short: "List the transactions of a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := a.bookClient()
			if err != nil {
				return err
			}
			l, err := books.FilterTransactions(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), l)
		},
	}

	all := &cobra.Command{
		Use:   "all",
		Short: "List every transaction (administrators only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := a.bookClient()
			if err != nil {
				return err
			}
			l, err := books.GetAllTransactions(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), l)
		},
	}

	var direction string
	byUser := &cobra.Command{
		Use:   "user <userId>",
		Short: "List the transactions a user sent or received",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := a.userClient()
			if err != nil {
				return err
			}
			l, err := users.GetTransactionsByUserID(cmd.Context(), bookchain.ID(args[0]), direction)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), l)
		},
	}
	byUser.Flags().StringVar(&direction, "direction", "", "send or receive (default both)")

	cmd.AddCommand(status, get, mine, filter, all, byUser)
	return cmd
}
