// Package versioncheck tells users when a newer hackadmin release exists.
// The latest GitHub release is cached for a day; the startup banner reads
// only the cache and refreshes it in the background when stale.
package versioncheck
