/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bookchainsdk enables Go developers to build solutions that interact with a Bookchain
// book marketplace, whose book ownership is recorded by a Hyperledger Fabric chaincode.
//
// Packages for end developer usage
//
// pkg/bcsdk: The main package of the Bookchain SDK. It loads the configuration and prepares the
// session token store, metrics and requester shared by the client packages listed below.
//
// pkg/client/chaincode: Invokes the book ownership chaincode through the backend.
//
// pkg/client/book: Provides book and blind-box operations such as uploads, transfers and reveals.
//
// pkg/client/user: Provides sign in, the current user, purchases and transaction history.
//
// pkg/client/event: Receives the chaincode events pushed over the backend WebSocket.
//
// Basic workflow
//
//      1) Instantiate a bcsdk instance using a configuration.
//      2) Create a client instance using the bcsdk accessors.
//      3) Sign in with the user client. The session token is attached to every later call.
//      4) Use the funcs provided by each client to create your solution!
//      5) Call bcsdk.Close() to close event sockets.
//
// cmd/bookchain is a command line client built on the same packages.
//
package bookchainsdk
