// Package transport implements the authenticated HTTP core shared by all
// Flanks API sub-clients: token lifecycle (acquire, cache, proactive and
// reactive refresh), request execution, error classification, and bounded
// retry with exponential backoff.
//
// All remote communication passes through a single Connection. Sub-clients
// never see the bearer token; they observe only correctly authenticated
// calls.
package transport
