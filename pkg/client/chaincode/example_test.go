/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/
package chaincode

import (
	"context"
	"fmt"
	"net/http"

	"github.com/zhang829-666/BookchainHF/pkg/client/user"
	"github.com/zhang829-666/BookchainHF/pkg/common/providers/bookchain"
	contextApi "github.com/zhang829-666/BookchainHF/pkg/common/providers/context"
	bcctx "github.com/zhang829-666/BookchainHF/pkg/context"
	"github.com/zhang829-666/BookchainHF/pkg/fab/mocks"
)

func Example() {

	cc, err := New(mockClientProvider())
	if err != nil {
		fmt.Println("failed to create client")
		return
	}

	resp, err := cc.TransferBookOwnership(context.Background(), "asset-1", "bob")
	if err != nil {
		fmt.Printf("failed to transfer book: %s\n", err)
		return
	}

	fmt.Println(resp.Payload.String())

	// Output: {"txId":"tx1"}
}

func ExampleClient_CreateBookAsset() {

	cc, err := New(mockClientProvider())
	if err != nil {
		fmt.Println("failed to create client")
		return
	}

	book := NewParams("assetId", "asset-2", "owner", "alice", "isBlindBox", true)
	if _, err := cc.CreateBookAsset(context.Background(), book); err != nil {
		fmt.Printf("failed to create asset: %s\n", err)
		return
	}

	fmt.Println("asset created")

	// Output: asset created
}

func mockClientProvider() contextApi.ClientProvider {
	requester := mocks.NewMockRequester().
		SetResponse(http.MethodGet, user.RouteCurrentUser, bookchain.User{UserID: "1", Username: "alice"}).
		SetResponse(http.MethodPost, RouteInvoke, mocks.RawResponse(`{"txId":"tx1"}`))

	ctx, err := bcctx.NewClient(
		bcctx.WithEndpointConfig(mocks.NewMockConfig("http://localhost:8080", "")),
		bcctx.WithRequester(requester),
	)
	if err != nil {
		panic(err)
	}
	return bcctx.Provider(ctx)
}
