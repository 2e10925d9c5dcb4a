// Package delivery defines the contract every transport entry point fulfills.
package delivery

import "context"

// Delivery is a long-running transport (an HTTP server here) started by main
// and stopped through its fx lifecycle hook.
type Delivery interface {
	Serve(ctx context.Context) error
}
