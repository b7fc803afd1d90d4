// Package preflight runs the checks reported by `subfix check` and gated
// before an interactive run: the AssemblyAI credential, the rule table, the
// optional boost-word file, the artifact directory, the transcript cache
// location, and API reachability.
package preflight
