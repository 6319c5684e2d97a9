package memory

import (
	"sort"

	"github.com/nimeshabuddhika/resilient-antifraud/pkg/models"
)

func copyTransaction(t models.Transaction) models.Transaction {
	if t.Feedback != nil {
		v := *t.Feedback
		t.Feedback = &v
	}
	return t
}

func sortByID[T any](entries []T, id func(T) int64) {
	sort.Slice(entries, func(i, j int) bool { return id(entries[i]) < id(entries[j]) })
}
