// Package inverters is the repository over the backend inverter endpoints.
//
// Single-shot queries go through safecall and return a netresult.Result.
// Lists are served by pager loaders built here, bound to their filters and
// gated on the auth envelope.
package inverters
