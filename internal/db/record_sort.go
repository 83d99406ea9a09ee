package db

import (
	"fmt"
	"strings"
)

var sortableRecordColumns = map[string]string{
	"id":             "id",
	"created":        "created",
	"updated":        "updated",
	"day":            "day",
	"period":         "period",
	"student_name":   "student_name",
	"class_or_study": "class_or_study",
	"zone":           "zone",
	"action":         "action",
}

// parseRecordSort turns an expression like "-created,period" into an ORDER BY
// clause over whitelisted columns. Rows sharing every sort key fall back to
// insertion order in the direction of the first term.
func parseRecordSort(expression string) (string, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return "", nil
	}

	terms := strings.Split(expression, ",")
	clauses := make([]string, 0, len(terms)+1)
	tieBreak := "rowid ASC"
	for index, term := range terms {
		term = strings.TrimSpace(term)
		direction := "ASC"
		switch {
		case strings.HasPrefix(term, "-"):
			direction = "DESC"
			term = term[1:]
		case strings.HasPrefix(term, "+"):
			term = term[1:]
		}

		column, ok := sortableRecordColumns[strings.TrimSpace(term)]
		if !ok {
			return "", fmt.Errorf("%w: unknown field %q", ErrInvalidSort, term)
		}
		if index == 0 {
			tieBreak = "rowid " + direction
		}
		clauses = append(clauses, column+" "+direction)
	}

	clauses = append(clauses, tieBreak)
	return strings.Join(clauses, ", "), nil
}
