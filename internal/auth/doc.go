// Package auth exchanges user credentials for a session token.
//
// # Overview
//
// Client.Login posts Basic credentials to the credential endpoint and
// extracts the token from whatever JSON the endpoint answers with. The
// extraction is an ordered chain of pure decoders (see tokenDecoders):
//
//  1. the "token", "jwt" and "access_token" fields of the top-level object;
//  2. a body that is itself a JSON string with three dot segments;
//  3. a bounded, document-order search through nested objects and arrays.
//
// A discovered token is persisted through a TokenStore and returned as an
// immutable session.Session. Client.Logout clears the store.
//
// # Errors
//
// Non-success statuses unwrap to common.ErrAuthenticationFailed; bodies
// that are not JSON, carry no token, or carry a badly shaped one unwrap to
// common.ErrMalformedResponse.
package auth
