// Package mergeplan implements the merge plan: the record of which config
// files each package contributes to each group, per environment, and the
// order in which they must be merged.
//
// The plan is forgiving by contract. Queries against keys that were never
// inserted return empty results or false, and mutations against missing
// keys are no-ops. No operation returns an error.
//
// A MergePlan is not safe for concurrent use. Callers that share one across
// goroutines must serialize access themselves.
package mergeplan
