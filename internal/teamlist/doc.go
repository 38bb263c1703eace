// Package teamlist holds an accumulating, filterable view of a hackathon's
// teams, fetched page by page from the API. A page-1 fetch replaces the held
// list, later pages append to it, and a fetch started while another is in
// flight cancels and supersedes the older one.
package teamlist
