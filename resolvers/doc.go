// Package resolvers contains the two interchangeable geolocation
// strategies: a local MaxMind database for when the file is present,
// and the ipwho.is API as a paced remote fallback. The choice between
// them is made once at process start.
package resolvers
