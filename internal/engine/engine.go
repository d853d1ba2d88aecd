// Package engine provides the model-invocation boundary: clients that send
// a composed instruction to a text-generation backend and return the raw
// response text. Two backends are supported, AWS Bedrock and a local
// Ollama server, selected by configuration.
package engine

import "context"

// Invoker sends a prompt to a text-generation backend and returns the raw
// response text. Callers treat it as a fallible, latency-bearing black
// box; failures are returned as *InvocationError.
type Invoker interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// InvocationError reports a failed model invocation, carrying the backend
// name and the upstream error.
type InvocationError struct {
	Backend string
	Err     error
}

func (e *InvocationError) Error() string {
	return "invoking " + e.Backend + " model: " + e.Err.Error()
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}
