// Package payload loads request bodies from YAML files and validates them
// against embedded JSON schemas before anything is sent to the API.
package payload
