// Package message seals chat text for a peer's published key and opens
// envelopes addressed to the local identity.
package message
