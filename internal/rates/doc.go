// Package rates provides exchange rates for the currency converter.
//
// A Client fetches a rate table from a JSON endpoint and a Service caches
// the latest table, falling back to the last good table or to a built-in
// static table when the endpoint is unavailable.
package rates
