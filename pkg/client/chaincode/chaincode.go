/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package chaincode invokes the book ownership chaincode through the
// Bookchain backend.
//
// Every invocation is posted to the backend on behalf of the current user,
// with the arguments flattened into an alternating key/value list.
package chaincode

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/zhang829-666/BookchainHF/pkg/client/user"
	"github.com/zhang829-666/BookchainHF/pkg/common/logging"
	"github.com/zhang829-666/BookchainHF/pkg/common/providers/bookchain"
	contextApi "github.com/zhang829-666/BookchainHF/pkg/common/providers/context"
)

var logger = logging.NewLogger("bcsdk/client")

// Chaincode functions
const (
	CreateAsset    = "createAsset"
	TransferAsset  = "transferAsset"
	QueryAsset     = "readAsset"
	QueryAllAssets = "queryAllAssets"
)

// Routes served by the backend for chaincode operations
const (
	RouteInvoke            = "/api/blockchain/invoke"
	RouteTransactionStatus = "/api/blockchain/transactions/{txHash}"
)

const defaultOrganization = "org1"

// CurrentUserProvider returns the user invocations are made for
type CurrentUserProvider interface {
	GetCurrentUser(ctx context.Context) (*bookchain.User, error)
}

// InvokeRequest is the body of a chaincode invocation
type InvokeRequest struct {
	Function     string        `json:"function"`
	Args         []interface{} `json:"args"`
	UserID       bookchain.ID  `json:"userId"`
	Organization string        `json:"organization"`
}

// Response is the backend answer to an invocation, as returned
type Response struct {
	Payload bookchain.Payload `json:"payload" yaml:"payload"`
}

// Client invokes chaincode functions
type Client struct {
	requester    bookchain.Requester
	users        CurrentUserProvider
	organization string
}

// ClientOption describes a functional parameter for the New constructor
type ClientOption func(*Client) error

// WithOrganization overrides the configured organization
func WithOrganization(org string) ClientOption {
	return func(c *Client) error {
		if org == "" {
			return errors.New("organization is empty")
		}
		c.organization = org
		return nil
	}
}

// WithCurrentUserProvider overrides how the current user is resolved
func WithCurrentUserProvider(p CurrentUserProvider) ClientOption {
	return func(c *Client) error {
		if p == nil {
			return errors.New("current user provider is nil")
		}
		c.users = p
		return nil
	}
}

// New returns a chaincode client
func New(clientProvider contextApi.ClientProvider, opts ...ClientOption) (*Client, error) {
	ctx, err := clientProvider()
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create client context")
	}
	if ctx.Requester() == nil {
		return nil, errors.New("requester not initialized")
	}

	c := &Client{
		requester:    ctx.Requester(),
		organization: defaultOrganization,
	}
	if cfg := ctx.EndpointConfig(); cfg != nil && cfg.Organization() != "" {
		c.organization = cfg.Organization()
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, errors.WithMessage(err, "option failed")
		}
	}

	if c.users == nil {
		users, err := user.New(clientProvider)
		if err != nil {
			return nil, errors.WithMessage(err, "user client creation failed")
		}
		c.users = users
	}
	return c, nil
}

// InvokeChaincode invokes fcn with params for the current user.
// The arguments are sent as the flattened key/value list of params.
func (c *Client) InvokeChaincode(ctx context.Context, fcn string, params Params) (*Response, error) {
	if fcn == "" {
		return nil, errors.New("chaincode function is required")
	}

	u, err := c.users.GetCurrentUser(ctx)
	if err != nil {
		return nil, errors.WithMessage(err, "resolving current user failed")
	}

	req := bookchain.NewRequest(http.MethodPost, RouteInvoke, RouteInvoke)
	req.Body = &InvokeRequest{
		Function:     fcn,
		Args:         params.Flatten(),
		UserID:       u.UserID,
		Organization: c.organization,
	}

	logger.Debugf("invoking chaincode function %s for user %s", fcn, u.UserID)

	var payload []byte
	if err := c.requester.Do(ctx, req, &payload); err != nil {
		return nil, errors.WithMessagef(err, "invoking chaincode function %s failed", fcn)
	}
	return &Response{Payload: payload}, nil
}

// CreateBookAsset records a book asset. The asset type is BLIND_BOX when
// bookData carries a true isBlindBox value, NORMAL otherwise.
func (c *Client) CreateBookAsset(ctx context.Context, bookData Params) (*Response, error) {
	return c.InvokeChaincode(ctx, CreateAsset, bookAssetParams(bookData))
}

func bookAssetParams(bookData Params) Params {
	assetType := bookchain.AssetTypeNormal
	if v, ok := bookData.Get("isBlindBox"); ok && truthy(v) {
		assetType = bookchain.AssetTypeBlindBox
	}
	return bookData.Set("type", assetType)
}

// truthy reports whether v counts as set: booleans and numbers by value,
// strings by their boolean spelling, anything else when non-empty
func truthy(v interface{}) bool {
	b, err := cast.ToBoolE(v)
	if err == nil {
		return b
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return v != nil
}

// TransferBookOwnership transfers assetID to newOwner
func (c *Client) TransferBookOwnership(ctx context.Context, assetID, newOwner string) (*Response, error) {
	return c.InvokeChaincode(ctx, TransferAsset, NewParams("assetId", assetID, "owner", newOwner))
}

// QueryBookAsset reads a single asset
func (c *Client) QueryBookAsset(ctx context.Context, assetID string) (*Response, error) {
	return c.InvokeChaincode(ctx, QueryAsset, NewParams("assetId", assetID))
}

// QueryAllBookAssets lists assets of assetType. An empty type is sent as
// null and lists every asset.
func (c *Client) QueryAllBookAssets(ctx context.Context, assetType string) (*Response, error) {
	var t interface{}
	if assetType != "" {
		t = assetType
	}
	return c.InvokeChaincode(ctx, QueryAllAssets, NewParams("type", t))
}

// GetTransactionStatus returns the ledger status of a transaction
func (c *Client) GetTransactionStatus(ctx context.Context, txHash string) (*bookchain.TransactionStatus, error) {
	if txHash == "" {
		return nil, errors.New("transaction hash is required")
	}
	req := bookchain.NewRequest(http.MethodGet, RouteTransactionStatus, "/api/blockchain/transactions/"+url.PathEscape(txHash))

	s := &bookchain.TransactionStatus{}
	if err := c.requester.Do(ctx, req, s); err != nil {
		return nil, errors.WithMessage(err, "getting transaction status failed")
	}
	return s, nil
}
