// Geodash is a small dashboard backend for request logs stored in
// Axiom.
//
// It answers two questions for a map frontend: where do requests come
// from, and what do they hit. For the first one it queries Axiom for
// per-IP request counts over a trailing window, resolves every address
// to an approximate location and joins both datasets. For the second
// one it serves top URLs and a status code histogram from the same
// dataset.
//
// The tool is organized into 3 logical parts:
//
// Geolib
//
// geolib is the main package of the application: record types, the
// Resolver contract, the Dashboard which performs the join and the
// HTTP surface.
//
// Axiom
//
// axiom is the client of the APL query API, including the transpose of
// its columnar tabular responses.
//
// Resolvers
//
// resolvers holds both geolocation strategies: the local MaxMind
// database and the paced ipwho.is fallback. The main package picks one
// of them at startup and never revisits the choice.
package main
