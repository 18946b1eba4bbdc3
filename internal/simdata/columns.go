package simdata

import "strings"

const (
	objectColumnSuffix = "_object_similarities"
	attackColumnSuffix = "_attack_similarities"
)

// ColumnName returns the matrix column carrying model's score for subject.
func ColumnName(model string, subject Subject) string {
	if subject == SubjectAttack {
		return model + attackColumnSuffix
	}
	return model + objectColumnSuffix
}

// parseColumns resolves every column against the known model names. A column
// only belongs to a model when it is exactly "<model>_<subject>_similarities".
func parseColumns(columns, models []string) []ScoreColumn {
	known := make(map[string]struct{}, len(models))
	for _, m := range models {
		known[m] = struct{}{}
	}

	out := make([]ScoreColumn, len(columns))
	for i, name := range columns {
		out[i] = ScoreColumn{Name: name}

		var model string
		var subject Subject
		switch {
		case strings.HasSuffix(name, objectColumnSuffix):
			model, subject = strings.TrimSuffix(name, objectColumnSuffix), SubjectObject
		case strings.HasSuffix(name, attackColumnSuffix):
			model, subject = strings.TrimSuffix(name, attackColumnSuffix), SubjectAttack
		default:
			continue
		}

		// metadata without a models list still gets structured columns
		if _, ok := known[model]; ok || len(known) == 0 {
			out[i].Model = model
			out[i].Subject = subject
		}
	}
	return out
}
