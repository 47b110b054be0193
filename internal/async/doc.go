// Package async provides the asynchronous execution layer for blocking
// remote calls. It contains a bounded worker pool that runs synchronous
// operations off the caller's goroutine with a per-call deadline, and a
// retrying executor that masks transient failures behind a configurable
// retry policy with increasing per-attempt patience.
package async
