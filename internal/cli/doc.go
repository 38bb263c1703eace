// Package cli implements the cobra command tree for hackadmin: team listings,
// rounds, announcements, ending a hackathon, and GitHub repository links.
package cli
