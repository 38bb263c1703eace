// Package api is the HTTP client for the hackathon-management REST API.
// It covers rounds, the paginated team listing, ending a hackathon,
// announcements, and the GitHub repository connections of a team.
package api
