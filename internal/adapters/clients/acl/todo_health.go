package acl

import "context"

// Name identifies the API in a [ports.HealthRegistry]. It matches the
// service name given to the underlying httpclient.
func (c *TodoClient) Name() string {
	return c.http.Name()
}

// HealthCheck reports the API's availability from the circuit breaker state.
// No request is made.
func (c *TodoClient) HealthCheck(ctx context.Context) error {
	return c.http.HealthCheck(ctx)
}
