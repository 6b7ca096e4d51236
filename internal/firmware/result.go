// SPDX-License-Identifier: MPL-2.0

package firmware

// Result holds the captured output streams of one orchestration step.
type Result struct {
	Stdout []byte
	Stderr []byte
}

// Aggregate combines the results of sequential orchestration steps into one,
// concatenating stdout and stderr streams in step order. Aggregating nothing
// yields an empty Result. Aggregate performs no I/O; fail-fast behavior
// happens before aggregation, so a failed step never reaches it.
func Aggregate(results ...Result) Result {
	var combined Result
	for _, r := range results {
		combined.Stdout = append(combined.Stdout, r.Stdout...)
		combined.Stderr = append(combined.Stderr, r.Stderr...)
	}
	return combined
}
