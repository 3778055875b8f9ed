// Package preflight provides readiness checks for the external APIs
// and filesystem paths the refresh pipeline depends on.
//
// The CLI "smartlists status" command runs RunAll and displays each
// result; a failed check never blocks a refresh, since a missing
// credential or unreachable API only degrades the lists that need it.
package preflight
