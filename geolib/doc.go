// Package geolib is the core of the dashboard backend. It defines the
// record types the frontend consumes, the Resolver contract both
// geolocation strategies implement, the orchestrating Dashboard which
// joins request counts with locations, and the HTTP surface serving
// the result.
package geolib
