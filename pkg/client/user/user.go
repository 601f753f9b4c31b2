/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package user provides account operations against the Bookchain backend:
// login, the current user, the user's books and transactions, blind box
// purchases and identifier generation.
//  Basic Flow:
//  1) Prepare client context
//  2) Create user client
//  3) Login (the token is kept in the context token store)
//  4) Call account operations
package user

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/zhang829-666/BookchainHF/pkg/common/logging"
	"github.com/zhang829-666/BookchainHF/pkg/common/providers/bookchain"
	contextApi "github.com/zhang829-666/BookchainHF/pkg/common/providers/context"
)

var logger = logging.NewLogger("bcsdk/client")

// Routes served by the backend for user operations
const (
	RouteLogin            = "/api/auth/login"
	RouteCurrentUser      = "/api/users/me"
	RouteUserBooks        = "/api/books/user"
	RouteUserTransactions = "/api/transactions/user"
	RoutePurchaseBlindBox = "/api/blind-boxes/{boxId}/purchase"
	RouteUUID             = "/api/utils/uuid"
	RouteRegister         = "/api/users/register"
	RouteInterests        = "/api/users/interests"
	RouteUserByName       = "/api/users/{username}"
	RouteTransactionsByID = "/api/transactions/user/{userId}"
)

// Client performs user operations
type Client struct {
	requester  bookchain.Requester
	tokenStore bookchain.TokenStore
}

// ClientOption describes a functional parameter for the New constructor
type ClientOption func(*Client) error

// WithTokenStore overrides the token store of the client context
func WithTokenStore(store bookchain.TokenStore) ClientOption {
	return func(c *Client) error {
		if store == nil {
			return errors.New("token store is nil")
		}
		c.tokenStore = store
		return nil
	}
}

// New returns a user client
func New(clientProvider contextApi.ClientProvider, opts ...ClientOption) (*Client, error) {
	ctx, err := clientProvider()
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create client context")
	}
	if ctx.Requester() == nil {
		return nil, errors.New("requester not initialized")
	}

	c := &Client{
		requester:  ctx.Requester(),
		tokenStore: ctx.TokenStore(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, errors.WithMessage(err, "option failed")
		}
	}
	return c, nil
}

// Login authenticates with username and password. The returned token is
// saved in the token store and sent with subsequent requests.
func (c *Client) Login(ctx context.Context, credentials bookchain.LoginRequest) (*bookchain.LoginResponse, error) {
	req := bookchain.NewRequest(http.MethodPost, RouteLogin, RouteLogin)
	req.Body = credentials

	var body []byte
	if err := c.requester.Do(ctx, req, &body); err != nil {
		return nil, errors.WithMessage(err, "login failed")
	}

	resp := &bookchain.LoginResponse{}
	if err := resp.UnmarshalJSON(body); err != nil {
		// plain text token
		resp.Token = strings.TrimSpace(string(body))
	}
	if resp.Token == "" {
		return nil, errors.New("login response carries no token")
	}

	if c.tokenStore != nil {
		if err := c.tokenStore.SetToken(resp.Token); err != nil {
			return nil, errors.WithMessage(err, "saving session token failed")
		}
	}
	logger.Infof("logged in as %s", credentials.Username)
	return resp, nil
}

// Logout forgets the session token. The backend is not called.
func (c *Client) Logout() error {
	if c.tokenStore == nil {
		return nil
	}
	return errors.WithMessage(c.tokenStore.ClearToken(), "clearing session token failed")
}

// GetCurrentUser returns the authenticated user
func (c *Client) GetCurrentUser(ctx context.Context) (*bookchain.User, error) {
	user := &bookchain.User{}
	if err := c.requester.Do(ctx, bookchain.NewRequest(http.MethodGet, RouteCurrentUser, RouteCurrentUser), user); err != nil {
		return nil, errors.WithMessage(err, "getting current user failed")
	}
	return user, nil
}

// GetUserBooks returns a page of the books owned by the current user.
// Pages start at 1; a page below 1 requests the first page.
func (c *Client) GetUserBooks(ctx context.Context, page int) (*bookchain.BookList, error) {
	if page < 1 {
		page = 1
	}
	req := bookchain.NewRequest(http.MethodGet, RouteUserBooks, RouteUserBooks)
	req.Query = url.Values{"page": {strconv.Itoa(page)}}

	books := &bookchain.BookList{}
	if err := c.requester.Do(ctx, req, books); err != nil {
		return nil, errors.WithMessage(err, "getting user books failed")
	}
	return books, nil
}

// GetUserTransactions returns a page of the current user's transactions.
// txType may be empty. dateRange holds the optional start and end dates;
// dates that are not given are not sent.
func (c *Client) GetUserTransactions(ctx context.Context, page int, txType string, dateRange []string) (*bookchain.TransactionList, error) {
	if page < 1 {
		page = 1
	}
	req := bookchain.NewRequest(http.MethodGet, RouteUserTransactions, RouteUserTransactions)
	req.Query = TransactionQuery(page, txType, dateRange)

	txs := &bookchain.TransactionList{}
	if err := c.requester.Do(ctx, req, txs); err != nil {
		return nil, errors.WithMessage(err, "getting user transactions failed")
	}
	return txs, nil
}

// TransactionQuery builds the query of a user transaction listing
func TransactionQuery(page int, txType string, dateRange []string) url.Values {
	q := url.Values{
		"page": {strconv.Itoa(page)},
		"type": {txType},
	}
	if len(dateRange) > 0 && dateRange[0] != "" {
		q.Set("startDate", dateRange[0])
	}
	if len(dateRange) > 1 && dateRange[1] != "" {
		q.Set("endDate", dateRange[1])
	}
	return q
}

// PurchaseBlindBox buys the blind box with the given id
func (c *Client) PurchaseBlindBox(ctx context.Context, boxID string) (bookchain.Payload, error) {
	if boxID == "" {
		return nil, errors.New("box id is required")
	}
	req := bookchain.NewRequest(http.MethodPost, RoutePurchaseBlindBox, "/api/blind-boxes/"+url.PathEscape(boxID)+"/purchase")

	var resp []byte
	if err := c.requester.Do(ctx, req, &resp); err != nil {
		return nil, errors.WithMessage(err, "purchasing blind box failed")
	}
	return bookchain.Payload(resp), nil
}

// GenerateUUID asks the backend for a new 32 character identifier
func (c *Client) GenerateUUID(ctx context.Context) (string, error) {
	var id string
	if err := c.requester.Do(ctx, bookchain.NewRequest(http.MethodGet, RouteUUID, RouteUUID), &id); err != nil {
		return "", errors.WithMessage(err, "generating uuid failed")
	}
	return id, nil
}

// Register creates a new account
func (c *Client) Register(ctx context.Context, registration bookchain.RegisterRequest) (*bookchain.User, error) {
	req := bookchain.NewRequest(http.MethodPost, RouteRegister, RouteRegister)
	req.Body = registration

	user := &bookchain.User{}
	if err := c.requester.Do(ctx, req, user); err != nil {
		return nil, errors.WithMessage(err, "registering user failed")
	}
	return user, nil
}

// UpdateInterests replaces the reading interests of the current user
func (c *Client) UpdateInterests(ctx context.Context, interests string) error {
	req := bookchain.NewRequest(http.MethodPut, RouteInterests, RouteInterests)
	req.Body = bookchain.TextBody(interests)

	if err := c.requester.Do(ctx, req, nil); err != nil {
		return errors.WithMessage(err, "updating interests failed")
	}
	return nil
}

// GetTransactionsByUserID returns the transactions of a user.
// direction is bookchain.DirectionSend, bookchain.DirectionReceive, or empty
// for both.
func (c *Client) GetTransactionsByUserID(ctx context.Context, userID bookchain.ID, direction string) (*bookchain.TransactionList, error) {
	if userID == "" {
		return nil, errors.New("user id is required")
	}
	switch direction {
	case "", bookchain.DirectionSend, bookchain.DirectionReceive:
	default:
		return nil, errors.Errorf("invalid transaction direction [%s]", direction)
	}

	req := bookchain.NewRequest(http.MethodGet, RouteTransactionsByID, RouteUserTransactions+"/"+url.PathEscape(userID.String()))
	if direction != "" {
		req.Query = url.Values{"type": []string{direction}}
	}
	list := &bookchain.TransactionList{}
	if err := c.requester.Do(ctx, req, list); err != nil {
		return nil, errors.WithMessage(err, "getting user transactions failed")
	}
	return list, nil
}

// GetUserByUsername looks a user up by name
func (c *Client) GetUserByUsername(ctx context.Context, username string) (*bookchain.User, error) {
	if username == "" {
		return nil, errors.New("username is required")
	}
	user := &bookchain.User{}
	req := bookchain.NewRequest(http.MethodGet, RouteUserByName, "/api/users/"+url.PathEscape(username))
	if err := c.requester.Do(ctx, req, user); err != nil {
		return nil, errors.WithMessage(err, "getting user failed")
	}
	return user, nil
}
