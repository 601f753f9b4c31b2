/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bookchain

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Asset types recorded by the ownership chaincode
const (
	AssetTypeNormal   = "NORMAL"
	AssetTypeBlindBox = "BLIND_BOX"
)

// Transaction types reported by the backend
const (
	TxTypeTransfer       = "TRANSFER"
	TxTypeCreateBlindBox = "CREATE_BLIND_BOX"
)

// Ledger transaction states returned by the transaction status endpoint
const (
	TxStatusCompleted = "COMPLETED"
	TxStatusPending   = "PENDING"
	TxStatusFailed    = "FAILED"
)

// ID is a backend identifier. The backend serialises numeric ids as JSON
// numbers; ID accepts either a number or a string.
type ID string

// UnmarshalJSON accepts a JSON number, string or null
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.Wrapf(err, "invalid id %s", b)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes ids in canonical integer form, such as 42 or -7, as
// JSON numbers of any size and everything else, including 007 and +5, as
// strings
func (id ID) MarshalJSON() ([]byte, error) {
	if isCanonicalInteger(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func isCanonicalInteger(s string) bool {
	digits := strings.TrimPrefix(s, "-")
	if digits == "" || (digits[0] == '0' && (len(digits) > 1 || len(s) > 1)) {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

func (id ID) String() string {
	return string(id)
}

// User is a marketplace account
type User struct {
	UserID            ID       `json:"userId" yaml:"userId"`
	Username          string   `json:"username,omitempty" yaml:"username,omitempty"`
	Email             string   `json:"email,omitempty" yaml:"email,omitempty"`
	RealName          string   `json:"realName,omitempty" yaml:"realName,omitempty"`
	Interests         string   `json:"interests,omitempty" yaml:"interests,omitempty"`
	BlockchainAddress string   `json:"blockchainAddress,omitempty" yaml:"blockchainAddress,omitempty"`
	CreateTime        string   `json:"createTime,omitempty" yaml:"createTime,omitempty"`
	Roles             []string `json:"roles,omitempty" yaml:"roles,omitempty"`
}

// Book is a listed book or blind box
type Book struct {
	BookID           ID     `json:"bookId" yaml:"bookId"`
	Title            string `json:"title,omitempty" yaml:"title,omitempty"`
	Author           string `json:"author,omitempty" yaml:"author,omitempty"`
	Description      string `json:"description,omitempty" yaml:"description,omitempty"`
	Category         string `json:"category,omitempty" yaml:"category,omitempty"`
	IsBlindBox       bool   `json:"isBlindBox" yaml:"isBlindBox"`
	BlockchainTxHash string `json:"blockchainTxHash,omitempty" yaml:"blockchainTxHash,omitempty"`
	UploadTime       string `json:"uploadTime,omitempty" yaml:"uploadTime,omitempty"`
	Owner            *User  `json:"owner,omitempty" yaml:"owner,omitempty"`
}

// Transaction is an ownership change recorded by the backend
type Transaction struct {
	TransactionID    ID     `json:"transactionId" yaml:"transactionId"`
	Book             *Book  `json:"book,omitempty" yaml:"book,omitempty"`
	Sender           *User  `json:"sender,omitempty" yaml:"sender,omitempty"`
	Receiver         *User  `json:"receiver,omitempty" yaml:"receiver,omitempty"`
	TransactionType  string `json:"transactionType,omitempty" yaml:"transactionType,omitempty"`
	TransactionTime  string `json:"transactionTime,omitempty" yaml:"transactionTime,omitempty"`
	BlockchainTxHash string `json:"blockchainTxHash,omitempty" yaml:"blockchainTxHash,omitempty"`
	Remark           string `json:"remark,omitempty" yaml:"remark,omitempty"`
}

// TransactionStatus is the ledger state of a chaincode transaction
type TransactionStatus struct {
	TxHash      string `json:"txHash,omitempty" yaml:"txHash,omitempty"`
	Status      string `json:"status" yaml:"status"`
	BlockNumber uint64 `json:"blockNumber,omitempty" yaml:"blockNumber,omitempty"`
	Message     string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Final reports whether the transaction reached COMPLETED or FAILED
func (s *TransactionStatus) Final() bool {
	return s.Status == TxStatusCompleted || s.Status == TxStatusFailed
}

// BookList is a page of books
type BookList struct {
	Items []Book `json:"items" yaml:"items"`
	Total int64  `json:"total" yaml:"total"`
}

// UnmarshalJSON accepts a bare array or a page object
func (l *BookList) UnmarshalJSON(b []byte) error {
	items, total, err := decodePage(b)
	if err != nil {
		return err
	}
	l.Items = nil
	if items != nil {
		if err := json.Unmarshal(items, &l.Items); err != nil {
			return errors.Wrap(err, "decoding book list failed")
		}
	}
	l.Total = int64(len(l.Items))
	if total != nil {
		l.Total = *total
	}
	return nil
}

// TransactionList is a page of transactions
type TransactionList struct {
	Items []Transaction `json:"items" yaml:"items"`
	Total int64         `json:"total" yaml:"total"`
}

// UnmarshalJSON accepts a bare array or a page object
func (l *TransactionList) UnmarshalJSON(b []byte) error {
	items, total, err := decodePage(b)
	if err != nil {
		return err
	}
	l.Items = nil
	if items != nil {
		if err := json.Unmarshal(items, &l.Items); err != nil {
			return errors.Wrap(err, "decoding transaction list failed")
		}
	}
	l.Total = int64(len(l.Items))
	if total != nil {
		l.Total = *total
	}
	return nil
}

var (
	pageItemKeys  = []string{"content", "items", "records", "list", "data"}
	pageTotalKeys = []string{"total", "totalElements", "totalCount"}
)

// decodePage returns the item array and, when present, the total count of a
// list response. Bare arrays have no total.
func decodePage(b []byte) (json.RawMessage, *int64, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil, nil, nil
	}
	if b[0] == '[' {
		return b, nil, nil
	}

	var page map[string]json.RawMessage
	if err := json.Unmarshal(b, &page); err != nil {
		return nil, nil, errors.Wrap(err, "list response is neither an array nor a page object")
	}

	var items json.RawMessage
	for _, k := range pageItemKeys {
		if v, ok := page[k]; ok {
			items = v
			break
		}
	}

	for _, k := range pageTotalKeys {
		v, ok := page[k]
		if !ok {
			continue
		}
		var n int64
		if err := json.Unmarshal(v, &n); err == nil {
			return items, &n, nil
		}
	}
	return items, nil, nil
}

// LoginRequest holds the login credentials
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the result of a login. The backend may answer with the
// bare token (as a JSON string or plain text) or with an object.
type LoginResponse struct {
	Token     string `json:"token" yaml:"token"`
	TokenType string `json:"tokenType,omitempty" yaml:"tokenType,omitempty"`
	User      *User  `json:"user,omitempty" yaml:"user,omitempty"`
}

// UnmarshalJSON accepts a JSON string or an object carrying token/accessToken
func (r *LoginResponse) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &r.Token)
	}

	var raw struct {
		Token       string `json:"token"`
		AccessToken string `json:"accessToken"`
		TokenType   string `json:"tokenType"`
		User        *User  `json:"user"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.Token = raw.Token
	if r.Token == "" {
		r.Token = raw.AccessToken
	}
	r.TokenType = raw.TokenType
	r.User = raw.User
	return nil
}

// RegisterRequest creates a new account
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	RealName  string `json:"realName"`
	Interests string `json:"interests"`
}

// HeaderUserID names the acting user on routes that take it from a header
const HeaderUserID = "X-User-Id"

// BookRequest describes a book listed without a cover upload
type BookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Transaction directions relative to a user
const (
	DirectionSend    = "send"
	DirectionReceive = "receive"
)

// OwnershipTransfer is the body of a book ownership update
type OwnershipTransfer struct {
	NewOwnerUserID ID `json:"newOwnerUserId"`
}

// Payload is a response body whose shape the SDK does not interpret, e.g.
// the result of a chaincode invocation or a purchase
type Payload []byte

// Unmarshal decodes the payload into v
func (p Payload) Unmarshal(v interface{}) error {
	if len(bytes.TrimSpace(p)) == 0 {
		return errors.New("payload is empty")
	}
	return json.Unmarshal(p, v)
}

// String returns the value of a JSON string payload, otherwise the payload as is
func (p Payload) String() string {
	trimmed := bytes.TrimSpace(p)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	return string(trimmed)
}

// MarshalJSON emits a JSON payload unchanged and anything else as a JSON string
func (p Payload) MarshalJSON() ([]byte, error) {
	trimmed := bytes.TrimSpace(p)
	if len(trimmed) == 0 {
		return []byte("null"), nil
	}
	if json.Valid(trimmed) {
		return trimmed, nil
	}
	return json.Marshal(string(trimmed))
}

// MarshalYAML emits the decoded JSON value, or the text
func (p Payload) MarshalYAML() (interface{}, error) {
	var v interface{}
	if err := json.Unmarshal(p, &v); err == nil {
		return v, nil
	}
	return p.String(), nil
}
