// Package handler provides the HTTP handlers of the job board API.
//
// Handlers decode the request, call a service and write JSON. Each handler
// depends on a small interface declared next to it, so tests swap in fakes.
//
// # Errors
//
// Every failure is written as {"error": "<message>"}. MapServiceError turns
// service sentinels into status codes and the user-facing messages defined in
// the model package. Unknown errors become a logged 500.
//
// # Authentication
//
// Job mutations sit behind middleware.Auth, wired through RoutesConfig.
// Handlers read the caller with middleware.GetUserID.
package handler
