// Package config manages user-level settings stored at ~/.hackadmin/config.yaml.
// It loads, reads, and writes keys such as the API base URL, the organization
// and hackathon being administered, and the auth token.
package config
