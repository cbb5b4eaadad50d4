// Package policy parses and applies YAML defaults policy documents. A
// document declares the baseline grants and explicit denials for the
// default scope levels; applying it is additive and idempotent.
package policy
