// Package submit posts validated lead payloads to a form-relay endpoint and
// classifies the outcome. An Executor is bound to one endpoint through Config
// at construction; it never retries. Every call yields a Result: Success, or
// a Failure tagged with configuration_error (no usable endpoint, nothing was
// sent), network_error (the request could not complete) or server_rejected
// (the relay answered with a non-2xx status).
package submit
