/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package book provides access to the book and blind-box operations of the
// Bookchain backend.
package book

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/zhang829-666/BookchainHF/pkg/common/logging"
	"github.com/zhang829-666/BookchainHF/pkg/common/providers/bookchain"
	contextApi "github.com/zhang829-666/BookchainHF/pkg/common/providers/context"
)

var logger = logging.NewLogger("bcsdk/client")

// Routes served by the backend for book operations
const (
	RouteUpload             = "/api/books/upload"
	RouteBooks              = "/api/books"
	RouteBook               = "/api/books/{bookId}"
	RouteTransfer           = "/api/books/{bookId}/transfer"
	RouteBlindBoxes         = "/api/blind-boxes"
	RouteReveal             = "/api/blind-boxes/{boxId}/reveal"
	RouteMarket             = "/api/blind-boxes/market"
	RouteTransaction        = "/api/transactions/{txHash}"
	RouteBookTransactions   = "/api/transactions/book/{bookId}"
	RouteFilterTransactions = "/api/transactions/filter"
	RouteTransactions       = "/api/transactions"
	RouteNormalBook         = "/api/books/normal"
	RouteEmptyBlindBox      = "/api/books/blind-box"
)

// Client performs book and blind-box operations
type Client struct {
	requester bookchain.Requester
}

// New returns a book client
func New(clientProvider contextApi.ClientProvider) (*Client, error) {
	ctx, err := clientProvider()
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create client context")
	}
	if ctx.Requester() == nil {
		return nil, errors.New("requester not initialized")
	}
	return &Client{requester: ctx.Requester()}, nil
}

// UploadBook uploads a book with its cover
func (c *Client) UploadBook(ctx context.Context, form *bookchain.Multipart) (bookchain.Payload, error) {
	return c.postForm(ctx, RouteUpload, form)
}

// CreateBlindBox lists a book as a blind box
func (c *Client) CreateBlindBox(ctx context.Context, form *bookchain.Multipart) (bookchain.Payload, error) {
	return c.postForm(ctx, RouteBlindBoxes, form)
}

func (c *Client) postForm(ctx context.Context, route string, form *bookchain.Multipart) (bookchain.Payload, error) {
	if form == nil {
		return nil, errors.New("form is required")
	}
	req := bookchain.NewRequest(http.MethodPost, route, route)
	req.Form = form

	var payload []byte
	if err := c.requester.Do(ctx, req, &payload); err != nil {
		return nil, errors.WithMessagef(err, "POST %s failed", route)
	}
	return payload, nil
}

// UploadNormalBook lists a book described by request on behalf of userID,
// without a cover
func (c *Client) UploadNormalBook(ctx context.Context, userID bookchain.ID, request bookchain.BookRequest) (*bookchain.Book, error) {
	if userID == "" {
		return nil, errors.New("user id is required")
	}
	req := newUserRequest(http.MethodPost, RouteNormalBook, userID)
	req.Body = request

	book := &bookchain.Book{}
	if err := c.requester.Do(ctx, req, book); err != nil {
		return nil, errors.WithMessage(err, "uploading book failed")
	}
	return book, nil
}

// CreateEmptyBlindBox creates a blind box owned by userID. The backend
// picks its content.
func (c *Client) CreateEmptyBlindBox(ctx context.Context, userID bookchain.ID) (*bookchain.Book, error) {
	if userID == "" {
		return nil, errors.New("user id is required")
	}
	book := &bookchain.Book{}
	if err := c.requester.Do(ctx, newUserRequest(http.MethodPost, RouteEmptyBlindBox, userID), book); err != nil {
		return nil, errors.WithMessage(err, "creating blind box failed")
	}
	return book, nil
}

func newUserRequest(method, route string, userID bookchain.ID) *bookchain.Request {
	req := bookchain.NewRequest(method, route, route)
	req.Header = http.Header{}
	req.Header.Set(bookchain.HeaderUserID, userID.String())
	return req
}

// GetBookDetail returns a book
func (c *Client) GetBookDetail(ctx context.Context, bookID string) (*bookchain.Book, error) {
	if bookID == "" {
		return nil, errors.New("book id is required")
	}
	book := &bookchain.Book{}
	req := bookchain.NewRequest(http.MethodGet, RouteBook, RouteBooks+"/"+url.PathEscape(bookID))
	if err := c.requester.Do(ctx, req, book); err != nil {
		return nil, errors.WithMessage(err, "getting book failed")
	}
	return book, nil
}

// UpdateBookOwnership sends data as the ownership update of a book, typically
// a bookchain.OwnershipTransfer
func (c *Client) UpdateBookOwnership(ctx context.Context, bookID string, data interface{}) (bookchain.Payload, error) {
	if bookID == "" {
		return nil, errors.New("book id is required")
	}
	req := bookchain.NewRequest(http.MethodPut, RouteTransfer, RouteBooks+"/"+url.PathEscape(bookID)+"/transfer")
	req.Body = data

	logger.Debugf("updating ownership of book %s", bookID)

	var payload []byte
	if err := c.requester.Do(ctx, req, &payload); err != nil {
		return nil, errors.WithMessage(err, "updating book ownership failed")
	}
	return payload, nil
}

// RevealBlindBox returns the book hidden in a blind box
func (c *Client) RevealBlindBox(ctx context.Context, boxID string) (*bookchain.Book, error) {
	if boxID == "" {
		return nil, errors.New("blind box id is required")
	}
	book := &bookchain.Book{}
	req := bookchain.NewRequest(http.MethodGet, RouteReveal, RouteBlindBoxes+"/"+url.PathEscape(boxID)+"/reveal")
	if err := c.requester.Do(ctx, req, book); err != nil {
		return nil, errors.WithMessage(err, "revealing blind box failed")
	}
	return book, nil
}

// GetBlindBoxMarketList lists blind boxes on sale. The type parameter is
// always BLIND_BOX, whatever params holds. params is not modified.
func (c *Client) GetBlindBoxMarketList(ctx context.Context, params url.Values) (*bookchain.BookList, error) {
	query := copyValues(params)
	query.Set("type", bookchain.AssetTypeBlindBox)
	return c.listBooks(ctx, RouteMarket, query)
}

// GetAllBooks lists books
func (c *Client) GetAllBooks(ctx context.Context, params url.Values) (*bookchain.BookList, error) {
	return c.listBooks(ctx, RouteBooks, copyValues(params))
}

func (c *Client) listBooks(ctx context.Context, route string, query url.Values) (*bookchain.BookList, error) {
	req := bookchain.NewRequest(http.MethodGet, route, route)
	if len(query) > 0 {
		req.Query = query
	}
	list := &bookchain.BookList{}
	if err := c.requester.Do(ctx, req, list); err != nil {
		return nil, errors.WithMessagef(err, "listing %s failed", route)
	}
	return list, nil
}

// GetBlockchainTransaction returns the transaction recorded for txHash
func (c *Client) GetBlockchainTransaction(ctx context.Context, txHash string) (*bookchain.Transaction, error) {
	if txHash == "" {
		return nil, errors.New("transaction hash is required")
	}
	tx := &bookchain.Transaction{}
	req := bookchain.NewRequest(http.MethodGet, RouteTransaction, "/api/transactions/"+url.PathEscape(txHash))
	if err := c.requester.Do(ctx, req, tx); err != nil {
		return nil, errors.WithMessage(err, "getting transaction failed")
	}
	return tx, nil
}

// GetAllTransactions returns every recorded transaction. The backend
// restricts it to administrators.
func (c *Client) GetAllTransactions(ctx context.Context) (*bookchain.TransactionList, error) {
	list := &bookchain.TransactionList{}
	if err := c.requester.Do(ctx, bookchain.NewRequest(http.MethodGet, RouteTransactions, RouteTransactions), list); err != nil {
		return nil, errors.WithMessage(err, "listing transactions failed")
	}
	return list, nil
}

// GetTransactionsByBook returns the ownership history of a book
func (c *Client) GetTransactionsByBook(ctx context.Context, bookID string) (*bookchain.TransactionList, error) {
	if bookID == "" {
		return nil, errors.New("book id is required")
	}
	req := bookchain.NewRequest(http.MethodGet, RouteBookTransactions, "/api/transactions/book/"+url.PathEscape(bookID))
	list := &bookchain.TransactionList{}
	if err := c.requester.Do(ctx, req, list); err != nil {
		return nil, errors.WithMessage(err, "getting book transactions failed")
	}
	return list, nil
}

// FilterTransactions returns the transactions of txType
func (c *Client) FilterTransactions(ctx context.Context, txType string) (*bookchain.TransactionList, error) {
	if txType == "" {
		return nil, errors.New("transaction type is required")
	}
	req := bookchain.NewRequest(http.MethodGet, RouteFilterTransactions, RouteFilterTransactions)
	req.Query = url.Values{"transactionType": []string{txType}}

	list := &bookchain.TransactionList{}
	if err := c.requester.Do(ctx, req, list); err != nil {
		return nil, errors.WithMessage(err, "filtering transactions failed")
	}
	return list, nil
}

func copyValues(v url.Values) url.Values {
	out := make(url.Values, len(v)+1)
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
