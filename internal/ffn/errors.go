package ffn

import "fmt"

// ConfigurationError reports a network that cannot run the requested
// operation in its current configuration, for example a numeric operation
// on a network with no layers, or a backward pass without a matching
// forward pass. The caller can recover by correcting the configuration and
// retrying.
type ConfigurationError struct {
	Op     string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("ffn: %s: %s", e.Op, e.Reason)
}

// DimensionMismatchError reports input data whose flat size disagrees with
// the product of the network's configured input dimensions.
type DimensionMismatchError struct {
	Op       string
	Expected int
	Actual   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("ffn: %s: input size %d does not match the configured input dimensions (product %d)",
		e.Op, e.Actual, e.Expected)
}
