// Package auth turns a third-party identity token into a local user and a session.
//
// # Login
//
// A Verifier (GoogleVerifier) checks the identity token and extracts email,
// name and subject. The Reconciler then decides, before anything is written:
//
//   - no user for the email: create it with the requested role
//   - user with the same role: log in
//   - user with another role: reject with *RoleMismatchError
//
// A user's role is fixed at creation. Concurrent first logins for one email
// are settled by the store's unique index; the loser re-reads the winner's
// record and continues as a normal login.
//
// On success an Issuer (JWTIssuer) signs a refresh and an access token.
//
// # Protected routes
//
// RequireRole is Fiber middleware accepting access tokens issued by JWTIssuer:
//
//	app.Get("/api/auth/me", auth.RequireRole(issuer, store), handler)
//	app.Post("/api/hackathons", auth.RequireRole(issuer, store, models.RoleExpert), handler)
package auth
