// Package service contains the marketplace use cases. It orchestrates the
// stores defined in internal/store, the session manager and the OAuth
// providers to fulfill API requests.
//
// Key components:
//
//   - RoomService: room create, update and delete with ownership checks and
//     transactional amenity replacement.
//   - ListingService: paginated, read-only queries scoped by room or user.
//   - AmenityService: amenity CRUD behind a configurable write policy.
//   - AccountService: signup, password login, social login, logout and
//     private profile management.
//
// Services return sentinel errors (ErrAuthenticationRequired,
// ErrPermissionDenied, ErrWrongCredentials), store not-found errors, and
// domain validation errors. The API layer maps these to HTTP status codes.
package service
