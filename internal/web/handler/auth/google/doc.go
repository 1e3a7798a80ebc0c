// Package google provides the Google sign-in endpoint.
//
// A client obtains an ID token from Google and posts it together with the
// role it wants to register with:
//
//	POST /api/auth/google-login/
//	{"id_token": "<google id token>", "role": "student"}
//
// The token is verified against Google, the user is created on first login
// and a refresh and access token are returned:
//
//	{"refresh": "...", "access": "...", "user": {"email": "...", "username": "...", "role": "student"}}
//
// A user keeps the role of the first login. Logging in with another role is
// rejected with 400.
package google
