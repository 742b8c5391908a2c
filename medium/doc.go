// Package medium manages growth environments: the bounds on exchange
// reactions that decide what a model may eat and secrete.
//
// An Environment is an ordered collection of exchange-reaction bounds,
// independent of any particular model. It can be derived from a reference
// model (FromModel), imposed on another (Apply), read from and written to
// CSV media tables (ReadTable/WriteTable/LoadTable), or opened up entirely
// (Complete).
//
// Minimal answers the classic design question "what is the least this
// organism needs": it minimizes total uptake while holding growth at a
// required fraction of its optimum, and returns the surviving
// sub-environment.
//
// Media tables are plain CSV with a header:
//
//	compound,exchange,lower,upper
//	D-glucose,EX_glc,-10,0
//	oxygen,EX_o2,-20,0
//
// Applying an environment touches only bounds, never stoichiometry, and
// reports the exchange IDs the target model does not know. Strict mode turns
// that report into ErrUnknownExchange.
package medium
