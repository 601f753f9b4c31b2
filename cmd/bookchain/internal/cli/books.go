/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/zhang829-666/BookchainHF/pkg/client/book"
	"github.com/zhang829-666/BookchainHF/pkg/common/providers/bookchain"
)

func (a *app) bookClient() (*book.Client, error) {
	sdk, err := a.SDK()
	if err != nil {
		return nil, err
	}
	return sdk.BookClient()
}

// actingUser returns userID, or the signed in user when it is empty
func (a *app) actingUser(cmd *cobra.Command, userID string) (bookchain.ID, error) {
	if userID != "" {
		return bookchain.ID(userID), nil
	}
	users, err := a.userClient()
	if err != nil {
		return "", err
	}
	u, err := users.GetCurrentUser(cmd.Context())
	if err != nil {
		return "", err
	}
	return u.UserID, nil
}

func (a *app) newBooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Browse, upload and transfer books",
	}

	list := &cobra.Command{
		Use:   "list [key=value...]",
		Short: "List books, filtered by the given query parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(args)
			if err != nil {
				return err
			}
			books, err := a.bookClient()
			if err != nil {
				return err
			}
			l, err := books.GetAllBooks(cmd.Context(), params)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), l)
		},
	}

	get := &cobra.Command{
		Use:   "get <bookId>",
		Short: "Show a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := a.bookClient()
			if err != nil {
				return err
			}
			b, err := books.GetBookDetail(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), b)
		},
	}

	var page int
	mine := &cobra.Command{
		Use:   "mine",
		Short: "List the books of the signed in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := a.userClient()
			if err != nil {
				return err
			}
			l, err := users.GetUserBooks(cmd.Context(), page)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), l)
		},
	}
	mine.Flags().IntVar(&page, "page", 1, "page number")

	var upload uploadFlags
	uploadCmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := a.bookClient()
			if err != nil {
				return err
			}
			return upload.run(cmd, func(form *bookchain.Multipart) (bookchain.Payload, error) {
				return books.UploadBook(cmd.Context(), form)
			}, a)
		},
	}
	upload.register(uploadCmd, true)

	var to string
	transfer := &cobra.Command{
		Use:   "transfer <bookId>",
		Short: "Transfer a book to another user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if to == "" {
				return errors.New("--to is required")
			}
			books, err := a.bookClient()
			if err != nil {
				return err
			}
			p, err := books.UpdateBookOwnership(cmd.Context(), args[0], bookchain.OwnershipTransfer{NewOwnerUserID: bookchain.ID(to)})
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), p)
		},
	}
	transfer.Flags().StringVar(&to, "to", "", "user id of the new owner")

	history := &cobra.Command{
		Use:   "history <bookId>",
		Short: "List the ownership transactions of a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := a.bookClient()
			if err != nil {
				return err
			}
			l, err := books.GetTransactionsByBook(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), l)
		},
	}

	var (
		normal     bookchain.BookRequest
		normalUser string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "List a book without a cover",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if normal.Title == "" {
				return errors.New("--title is required")
			}
			userID, err := a.actingUser(cmd, normalUser)
			if err != nil {
				return err
			}
			books, err := a.bookClient()
			if err != nil {
				return err
			}
			b, err := books.UploadNormalBook(cmd.Context(), userID, normal)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), b)
		},
	}
	add.Flags().StringVar(&normal.Title, "title", "", "book title")
	add.Flags().StringVar(&normal.Author, "author", "", "book author")
	add.Flags().StringVar(&normal.Description, "description", "", "book description")
	add.Flags().StringVar(&normal.Category, "category", "", "book category")
	add.Flags().StringVar(&normalUser, "user", "", "owner user id (default the signed in user)")

	cmd.AddCommand(list, get, mine, uploadCmd, add, transfer, history)
	return cmd
}

func (a *app) newBlindBoxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "blindbox",
		Aliases: []string{"blind-box"},
		Short:   "Create, browse, purchase and reveal blind boxes",
	}

	var create uploadFlags
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "List a book as a blind box",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			create.blindBox = true
			books, err := a.bookClient()
			if err != nil {
				return err
			}
			return create.run(cmd, func(form *bookchain.Multipart) (bookchain.Payload, error) {
				return books.CreateBlindBox(cmd.Context(), form)
			}, a)
		},
	}
	create.register(createCmd, false)

	reveal := &cobra.Command{
		Use:   "reveal <boxId>",
		Short: "Reveal the book in a blind box",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := a.bookClient()
			if err != nil {
				return err
			}
			b, err := books.RevealBlindBox(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), b)
		},
	}

	market := &cobra.Command{
		Use:   "market [key=value...]",
		Short: "List the blind boxes on sale",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(args)
			if err != nil {
				return err
			}
			books, err := a.bookClient()
			if err != nil {
				return err
			}
			l, err := books.GetBlindBoxMarketList(cmd.Context(), params)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), l)
		},
	}

	purchase := &cobra.Command{
		Use:   "purchase <boxId>",
		Short: "Buy a blind box",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := a.userClient()
			if err != nil {
				return err
			}
			p, err := users.PurchaseBlindBox(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), p)
		},
	}

	var emptyUser string
	createEmpty := &cobra.Command{
		Use:   "create-empty",
		Short: "Create a blind box whose content the backend picks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := a.actingUser(cmd, emptyUser)
			if err != nil {
				return err
			}
			books, err := a.bookClient()
			if err != nil {
				return err
			}
			b, err := books.CreateEmptyBlindBox(cmd.Context(), userID)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), b)
		},
	}
	createEmpty.Flags().StringVar(&emptyUser, "user", "", "owner user id (default the signed in user)")

	cmd.AddCommand(createCmd, createEmpty, reveal, market, purchase)
	return cmd
}

type uploadFlags struct {
	title       string
	author      string
	description string
	category    string
	cover       string
	blindBox    bool
}

func (f *uploadFlags) register(cmd *cobra.Command, blindBoxFlag bool) {
	cmd.Flags().StringVar(&f.title, "title", "", "book title")
	cmd.Flags().StringVar(&f.author, "author", "", "book author")
	cmd.Flags().StringVar(&f.description, "description", "", "book description")
	cmd.Flags().StringVar(&f.category, "category", "", "book category")
	cmd.Flags().StringVar(&f.cover, "cover", "", "cover image file")
	if blindBoxFlag {
		cmd.Flags().BoolVar(&f.blindBox, "blind-box", false, "upload as a blind box")
	}
}

func (f *uploadFlags) run(cmd *cobra.Command, send func(*bookchain.Multipart) (bookchain.Payload, error), a *app) error {
	req := &book.UploadRequest{
		Title:       f.title,
		Author:      f.author,
		Description: f.description,
		Category:    f.category,
		IsBlindBox:  f.blindBox,
	}
	if f.cover != "" {
		file, err := os.Open(f.cover) // nolint: gosec
		if err != nil {
			return errors.Wrap(err, "opening cover failed")
		}
		defer file.Close() // nolint: errcheck
		req.Cover = file
		req.CoverName = filepath.Base(f.cover)
	}

	p, err := send(req.Form())
	if err != nil {
		return errors.WithMessagef(err, "uploading %s failed", strconv.Quote(f.title))
	}
	return a.print(cmd.OutOrStdout(), p)
}
