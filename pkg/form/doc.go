// Package form holds the live state of a lead form and runs its submit
// workflow: validate, submit once, notify, reset on success.
//
// A Form moves through Idle, Validating and Submitting. While a submission
// is in flight further calls to Submit are ignored, which is the only
// coordination between concurrent callers.
package form
