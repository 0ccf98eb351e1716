// Package domain contains the core business entities of the marketplace:
// users and hosts, rooms with their categories and amenities, experiences,
// and reviews. It also defines the validation error types and the password
// policy shared by the service and API layers. The package has no
// infrastructure dependencies.
package domain
