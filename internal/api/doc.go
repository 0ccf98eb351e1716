// Package api handles incoming HTTP requests for the marketplace: rooms,
// amenities, public listings and accounts. Handlers decode requests, call
// the application services and translate their errors to status codes
// through HandleAPIError.
package api
