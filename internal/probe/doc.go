// Package probe checks API liveness by trying an ordered list of candidate
// paths. Candidates are tried strictly one after another; the first 2xx reply
// wins, and when every candidate fails the result of the last one is returned
// so callers always display the final URL that was attempted.
package probe
