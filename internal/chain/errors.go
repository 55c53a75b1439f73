package chain

import (
	"context"
	"errors"
	"strings"
)

// ErrReverted is returned when a transfer was mined with a failed status.
var ErrReverted = errors.New("transaction reverted")

// Classify returns a concise, user-facing reason for common RPC failures.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "[TIMEOUT] " + err.Error()
	}
	if errors.Is(err, ErrReverted) {
		return "[REVERT] " + err.Error()
	}
	s := err.Error()
	ls := strings.ToLower(s)
	switch {
	case strings.Contains(s, "Too Many Requests"), strings.Contains(s, "-32005"):
		return "[RATE_LIMIT] provider throttled the request"
	case strings.Contains(ls, "execution reverted"):
		if idx := strings.Index(s, ":"); idx >= 0 && idx+1 < len(s) {
			if r := strings.TrimSpace(s[idx+1:]); r != "" {
				return "[REVERT] " + r
			}
		}
		return "[REVERT] execution reverted"
	case strings.Contains(ls, "insufficient funds"):
		return "[FUNDS] insufficient native balance for gas"
	case strings.Contains(ls, "nonce too low"), strings.Contains(ls, "replacement transaction underpriced"):
		return "[NONCE] " + s
	case strings.Contains(ls, "dial tcp"), strings.Contains(ls, "lookup "), strings.Contains(ls, "connection refused"):
		return "[NETWORK] " + s
	}
	return "[RPC] " + s
}
