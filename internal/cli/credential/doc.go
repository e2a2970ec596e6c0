// Package credential obtains the bearer token steam-cli authenticates with.
//
// A Provider is the bridge to wherever the token lives: the configuration,
// an environment variable, a file written by another program, or a helper
// command. The Consent wrapper asks the user before a token is used and
// remembers a refusal for the rest of the session.
package credential
