/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bookchain

import "encoding/json"

// Registration is a handle that is returned from a successful RegisterXXXEvent.
// This handle should be used in Unregister in order to unregister the event.
type Registration interface{}

// CCEvent is a chaincode event pushed by the backend
type CCEvent struct {
	EventName   string `json:"eventName,omitempty" mapstructure:"eventName"`
	TxID        string `json:"txId,omitempty" mapstructure:"txId"`
	ChaincodeID string `json:"chaincodeId,omitempty" mapstructure:"chaincodeId"`
	BlockNumber uint64 `json:"blockNumber,omitempty" mapstructure:"blockNumber"`
	AssetID     string `json:"assetId,omitempty" mapstructure:"assetId"`
	Owner       string `json:"owner,omitempty" mapstructure:"owner"`
	Type        string `json:"type,omitempty" mapstructure:"type"`
	// Payload is the decoded event as received
	Payload interface{} `json:"-" mapstructure:"-"`
	// Raw is the frame as received
	Raw json.RawMessage `json:"-" mapstructure:"-"`
}

// EventService registers for chaincode events pushed over the event socket
type EventService interface {
	// RegisterChaincodeEvent registers for chaincode events.
	// The returned channel is closed when the registration is removed.
	RegisterChaincodeEvent() (Registration, <-chan *CCEvent, error)

	// Unregister removes the given registration and closes the event channel.
	Unregister(reg Registration)
}
