// Package results defines the success/failure envelope returned by service
// operations. A Failure payload is a domain-level outcome (validation,
// missing row, rejected grant) that handlers turn into events or responses;
// Error is reserved for infrastructure problems that the caller may retry or
// escalate.
package results

// OperationResult carries the outcome of a single service operation.
// At most one of Success and Failure is set.
type OperationResult struct {
	Success any
	Failure any
	Error   error
}

// Success wraps a success payload.
func Success(payload any) OperationResult {
	return OperationResult{Success: payload}
}

// Failure wraps a domain failure payload together with its cause.
func Failure(payload any, err error) OperationResult {
	return OperationResult{Failure: payload, Error: err}
}

// HandlerResult pairs an outbound payload with the topic it publishes to.
type HandlerResult struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

// MapToHandlerResults maps the result onto the given topics. Results with
// neither payload set map to nothing, which lets handlers stay silent for
// no-op outcomes.
func (r OperationResult) MapToHandlerResults(successTopic, failureTopic string) []HandlerResult {
	switch {
	case r.Success != nil:
		return []HandlerResult{{Topic: successTopic, Payload: r.Success}}
	case r.Failure != nil:
		return []HandlerResult{{Topic: failureTopic, Payload: r.Failure}}
	default:
		return nil
	}
}
