package fxclient

import "errors"

// ErrQuoteUnavailable covers every way a quote attempt can fail:
// transport errors, timeouts, non-success statuses, unparseable bodies,
// and non-positive rates. Callers branch on the kind, not the cause.
var ErrQuoteUnavailable = errors.New("fx quote unavailable")
