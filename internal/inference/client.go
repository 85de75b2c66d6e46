// Package inference wraps the external text-generation services the
// recommendation pipeline calls. Each client turns one free-text prompt into
// one raw completion string; interpreting that string is the caller's job.
package inference

import "context"

type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
