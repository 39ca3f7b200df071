// internal/protocol/errors.go
package protocol

import (
	"errors"
	"strings"
)

// ErrorKind tags an upstream SDK failure. The SDK's error shapes are not
// contractually stable, so classification happens once, here, from message
// substrings; the rest of the system switches on Kind and never re-parses
// message strings.
type ErrorKind string

const (
	KindAlreadyAttached     ErrorKind = "already_attached"
	KindAlreadyRegistered   ErrorKind = "already_registered"
	KindNotOwner            ErrorKind = "not_owner"
	KindPermissionDenied    ErrorKind = "permission_denied"
	KindInsufficientBalance ErrorKind = "insufficient_balance"
	KindUserRejected        ErrorKind = "user_rejected"
	KindInvalidParams       ErrorKind = "invalid_params"
	KindWalletNotConnected  ErrorKind = "wallet_not_connected"
	KindWrongNetwork        ErrorKind = "wrong_network"
	KindNothingToClaim      ErrorKind = "nothing_to_claim"
	KindNotTokenHolder      ErrorKind = "not_token_holder"
	KindGeneric             ErrorKind = "generic"
)

// Error wraps an untyped upstream failure with a stable kind. The original
// message is preserved so nothing is lost when classification misses.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewError builds a tagged protocol error.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf extracts the kind from a classified error; unclassified errors
// count as generic.
func KindOf(err error) ErrorKind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return KindGeneric
}

// classification table, checked in order: the first matching substring
// wins. Includes the known contract error-code names the SDK surfaces
// verbatim.
var classifications = []struct {
	kind      ErrorKind
	fragments []string
}{
	{KindAlreadyAttached, []string{"already attached", "licensetermsalreadyattached"}},
	{KindAlreadyRegistered, []string{"already registered", "ipalreadyregistered"}},
	{KindNotOwner, []string{"not the owner", "not owner", "caller is not"}},
	{KindNothingToClaim, []string{"no claimable", "nothing to claim"}},
	{KindNotTokenHolder, []string{"not a token holder"}},
	{KindUserRejected, []string{"user rejected", "user denied", "rejected the request"}},
	{KindInsufficientBalance, []string{"insufficient funds", "insufficient balance", "exceeds balance"}},
	{KindPermissionDenied, []string{"permission denied", "unauthorized", "not allowed"}},
	{KindInvalidParams, []string{"invalid address", "invalid ip", "invalid license terms", "invalid argument", "malformed"}},
	{KindWalletNotConnected, []string{"wallet not connected", "no account"}},
	{KindWrongNetwork, []string{"wrong network", "chain mismatch", "unsupported chain"}},
}

// Classify wraps an arbitrary upstream error into a tagged Error. Already
// tagged errors pass through unchanged.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var perr *Error
	if errors.As(err, &perr) {
		return perr
	}

	message := err.Error()
	lower := strings.ToLower(message)
	for _, c := range classifications {
		for _, fragment := range c.fragments {
			if strings.Contains(lower, fragment) {
				return &Error{Kind: c.kind, Message: message}
			}
		}
	}

	return &Error{Kind: KindGeneric, Message: message}
}
