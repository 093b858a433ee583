// Package netresult is the three-state result vocabulary shared by every layer
// that talks to the backend.
//
// A Result is exactly one of Loading, Success or Error. Values are immutable;
// a state change is a new Result published to observers, never an update in
// place. Consumers branch with Match, which requires a handler for each
// variant, so no state can be silently ignored.
package netresult
