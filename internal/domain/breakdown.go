package domain

import (
	"strings"
	"time"
)

// ExtractCandidates pulls candidate subtask objects out of a generated
// document. The contract is strict on shape: the document must carry a
// "subtasks" key whose value is a list, and only mapping elements of that
// list are kept. Anything else, including a document that itself looks like
// a single task, yields no candidates. Being strict here keeps malformed
// generations from silently becoming half-formed tasks.
func ExtractCandidates(doc Document) []map[string]any {
	if doc == nil {
		return nil
	}
	raw, ok := doc["subtasks"]
	if !ok {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	var candidates []map[string]any
	for _, el := range list {
		if m, ok := el.(map[string]any); ok {
			candidates = append(candidates, m)
		}
	}
	return candidates
}

// ExtractAlternatives pulls alternative implementation approaches out of a
// generated document, under the same strict shape rule as ExtractCandidates:
// an "alternatives" key with a list value, mapping elements only.
func ExtractAlternatives(doc Document) []map[string]any {
	if doc == nil {
		return nil
	}
	raw, ok := doc["alternatives"]
	if !ok {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	var alts []map[string]any
	for _, el := range list {
		if m, ok := el.(map[string]any); ok {
			alts = append(alts, m)
		}
	}
	return alts
}

// ApplyAlternative reshapes the parent task around a chosen implementation
// approach. Size and time are coerced leniently with the parent's current
// values as fallbacks, and the approach is recorded in the purpose text.
func ApplyAlternative(parent *Task, alt map[string]any, now time.Time) {
	name := candidateString(alt, "name")
	desc := candidateString(alt, "description")
	parent.Scope.Size = CoerceSize(candidateString(alt, "size"), parent.Scope.Size)
	parent.Scope.TimeEstimate = CoerceTime(candidateString(alt, "time_estimate"), parent.Scope.TimeEstimate)
	if name != "" {
		note := "Selected implementation approach: " + name
		if desc != "" {
			note += "\n" + desc
		}
		parent.Purpose.DetailedDescription += "\n\n" + note
	}
	parent.Meta.Updated = now
}

// ApplyParentContext folds a generated parent-context document into the
// parent task. Only recognized fields are applied; risks merge as a set and
// the team changes only to a strictly valid value.
func ApplyParentContext(parent *Task, doc Document, now time.Time) bool {
	if doc == nil {
		return false
	}
	changed := false
	if s := candidateString(doc, "detailed_description"); s != "" {
		parent.Purpose.DetailedDescription = s
		changed = true
	}
	if risks := candidateStrings(doc, "risks"); len(risks) > 0 {
		merged := MergeRisks(parent.Scope.Risks, risks)
		if len(merged) != len(parent.Scope.Risks) {
			parent.Scope.Risks = merged
			changed = true
		}
	}
	if s := candidateString(doc, "detailed_outcome_definition"); s != "" {
		parent.Outcome.DetailedOutcomeDefinition = s
		changed = true
	}
	if t := Team(candidateString(doc, "team")); t.IsValid() && t != parent.Meta.Team {
		parent.Meta.Team = t
		changed = true
	}
	if changed {
		parent.Meta.Updated = now
	}
	return changed
}

// candidateString reads a string field from a raw candidate, looking first
// at the top level and then inside the named nested mappings.
func candidateString(raw map[string]any, key string, nested ...string) string {
	if s, ok := raw[key].(string); ok {
		return strings.TrimSpace(s)
	}
	for _, n := range nested {
		if m, ok := raw[n].(map[string]any); ok {
			if s, ok := m[key].(string); ok {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// candidateStrings reads a list-of-strings field, tolerating mixed lists by
// dropping non-string elements.
func candidateStrings(raw map[string]any, key string, nested ...string) []string {
	read := func(v any) []string {
		list, ok := v.([]any)
		if !ok {
			return nil
		}
		var out []string
		for _, el := range list {
			if s, ok := el.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	}
	if v, ok := raw[key]; ok {
		if out := read(v); out != nil {
			return out
		}
	}
	for _, n := range nested {
		if m, ok := raw[n].(map[string]any); ok {
			if out := read(m[key]); out != nil {
				return out
			}
		}
	}
	return nil
}

// conciseTitle strips a redundant parent-title prefix from a generated
// child title. Backends tend to echo the parent, producing titles like
// "Ship v2: design the schema"; the child keeps only its own part.
func conciseTitle(parentTitle, title string) string {
	rest, ok := strings.CutPrefix(title, parentTitle)
	if !ok || rest == title {
		return title
	}
	rest = strings.TrimLeft(rest, " \t:-")
	if rest == "" {
		return title
	}
	return rest
}

// purposePrefix keeps enough of a purpose text to identify it in derived
// child descriptions.
func purposePrefix(s string) string {
	if r := []rune(s); len(r) > 60 {
		return string(r[:60])
	}
	return s
}

// NormalizeCandidate turns one raw candidate mapping into a valid child
// task of parent. Every field the candidate omits or garbles falls back to
// a deterministic default derived from the parent, so normalization never
// fails. In particular:
//
//   - a candidate that names its own id keeps it; parent_id is always the
//     parent's ID, no matter what the candidate claims
//   - size defaults to one rank below the parent, floored at the smallest
//     value; time defaults to the simplified child estimate
//   - status is always backlog, timestamps are always now
//   - urgency, alignment, outcome type and team are inherited
func NormalizeCandidate(raw map[string]any, parent *Task, clock Clock) *Task {
	now := clock.Now()

	sizeFallback := SizeForRank(parent.Scope.Size.Rank() - 1)
	timeFallback := SimplifiedTime(parent.Scope.TimeEstimate)

	id := candidateString(raw, "id")
	if id == "" {
		id = NewTaskID()
	}
	title := conciseTitle(parent.Title, candidateString(raw, "title"))
	if title == "" {
		title = "Subtask for: " + parent.Title
	}
	desc := candidateString(raw, "description", "purpose")
	if desc == "" {
		desc = candidateString(raw, "detailed_description", "purpose")
	}
	if desc == "" {
		desc = "Subtask for: " + purposePrefix(parent.Purpose.DetailedDescription)
	}
	outcomeDef := candidateString(raw, "outcome", "outcome")
	if outcomeDef == "" {
		outcomeDef = candidateString(raw, "detailed_outcome_definition", "outcome")
	}
	if outcomeDef == "" {
		outcomeDef = "Completion of: " + title
	}

	parentID := parent.ID
	return &Task{
		ID:    id,
		Title: title,
		Purpose: Purpose{
			DetailedDescription: desc,
			Alignment:           append([]string(nil), parent.Purpose.Alignment...),
			Urgency:             parent.Purpose.Urgency,
		},
		Scope: Scope{
			Size:         CoerceSize(candidateString(raw, "size", "scope"), sizeFallback),
			TimeEstimate: CoerceTime(candidateString(raw, "time_estimate", "scope"), timeFallback),
			Dependencies: candidateStrings(raw, "dependencies", "scope"),
			Risks:        candidateStrings(raw, "risks", "scope"),
		},
		Outcome: Outcome{
			Type:                      parent.Outcome.Type,
			DetailedOutcomeDefinition: outcomeDef,
			AcceptanceCriteria:        candidateStrings(raw, "acceptance_criteria", "outcome"),
		},
		Meta: Meta{
			Status:     StatusBacklog,
			Created:    now,
			Updated:    now,
			Confidence: ConfidenceMedium,
			Team:       CoerceTeam(candidateString(raw, "team", "meta"), parent.Meta.Team),
		},
		ParentID: &parentID,
	}
}

// DefaultSubtask builds the deterministic fallback child used when
// generation produced nothing usable. The plan still moves forward with a
// single first-stage subtask.
func DefaultSubtask(parent *Task, clock Clock) *Task {
	now := clock.Now()

	sizeFallback := SizeForRank(parent.Scope.Size.Rank() - 1)
	timeFallback := SimplifiedTime(parent.Scope.TimeEstimate)

	parentID := parent.ID
	return &Task{
		ID:    NewTaskID(),
		Title: "First stage of " + parent.Title,
		Purpose: Purpose{
			DetailedDescription: "Initial phase of work on " + purposePrefix(parent.Purpose.DetailedDescription),
			Alignment:           append([]string(nil), parent.Purpose.Alignment...),
			Urgency:             parent.Purpose.Urgency,
		},
		Scope: Scope{
			Size:         sizeFallback,
			TimeEstimate: timeFallback,
		},
		Outcome: Outcome{
			Type:                      parent.Outcome.Type,
			DetailedOutcomeDefinition: "Completion of the first stage of " + parent.Title,
		},
		Meta: Meta{
			Status:     StatusBacklog,
			Created:    now,
			Updated:    now,
			Confidence: parent.Meta.Confidence,
			Team:       parent.Meta.Team,
		},
		ParentID: &parentID,
	}
}
