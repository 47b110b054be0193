// Package assistant models the remote assistant service boundary: threads,
// messages, runs and their status lifecycle. It contains the run polling
// state machine that drives a created run to a terminal status, recovering
// from dropped or stuck runs by recreating them, and the manager that keeps
// the interviewer and portfolio validator assistants provisioned remotely.
package assistant
