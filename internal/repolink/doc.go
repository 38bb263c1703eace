// Package repolink manages the GitHub repositories linked to a team's project.
//
// Linking is a redirect flow: the user's URL entries are validated locally,
// then handed to the backend's OAuth connector, which performs the link and
// redirects back with status, username and message query parameters.
// Unlinking is a plain API call.
package repolink
