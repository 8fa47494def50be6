package validation

import "strings"

// Issue is a single failed rule attached to a dotted field path.
type Issue struct {
	Field   string `json:"field"`
	Rule    string `json:"rule,omitempty"`
	Message string `json:"message"`
}

// Result captures the outcome of a schema run.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Ok is the empty, passing result.
func Ok() Result {
	return Result{Valid: true}
}

// Fail builds a failing result from issues.
func Fail(issues ...Issue) Result {
	if len(issues) == 0 {
		return Ok()
	}
	return Result{Valid: false, Issues: issues}
}

// Merge concatenates results; the merged result is valid only when every input is.
func Merge(results ...Result) Result {
	out := Ok()
	for _, r := range results {
		if len(r.Issues) == 0 && r.Valid {
			continue
		}
		out.Valid = false
		out.Issues = append(out.Issues, r.Issues...)
	}
	return out
}

// Fields groups messages by field path, preserving order and dropping duplicates.
func (r Result) Fields() map[string][]string {
	if len(r.Issues) == 0 {
		return nil
	}
	out := make(map[string][]string)
	seen := make(map[string]struct{}, len(r.Issues))
	for _, issue := range r.Issues {
		msg := strings.TrimSpace(issue.Message)
		if msg == "" {
			continue
		}
		key := issue.Field + "\x00" + msg
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out[issue.Field] = append(out[issue.Field], msg)
	}
	return out
}

// For returns the messages reported for a single field path.
func (r Result) For(field string) []string {
	return r.Fields()[field]
}

// Within keeps the issues whose field is path or nested below it.
func (r Result) Within(path string) Result {
	var kept []Issue
	for _, issue := range r.Issues {
		if issue.Field == path || strings.HasPrefix(issue.Field, path+".") {
			kept = append(kept, issue)
		}
	}
	return Fail(kept...)
}
