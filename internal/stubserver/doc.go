// Package stubserver is an in-memory stand-in for the ASEMPV backend, used for
// local development and integration tests.
//
// HTTP API (all paths under /api/v2, JSON, snake_case)
//
//	POST /auth/login/      {username, password} -> {access, refresh}
//	POST /auth/refresh/    {refresh}            -> {access, refresh}
//	GET  /inverters/                       paginated, filters: city, region,
//	                                       partner, search, min_power, max_power
//	GET  /inverters/{id}/
//	GET  /inverters/{id}/realtime/
//	GET  /inverters/{id}/statistics/?period=today|week|month|year
//	GET  /inverters/{id}/data/             paginated, filters: types[], aggregation
//	GET  /dashboard/
//	GET  /data-types/                      paginated, filter: search
//	GET  /data-types/{id}/
//
// Everything except the auth endpoints needs "Authorization: Bearer <access>".
// Tokens are HS256 JWTs; an access token is refused where a refresh token is
// expected and vice versa.
//
// Paginated replies are {count, next, previous, results}. next and previous
// are absolute URLs or null.
package stubserver
