package core

// Summary is the derived view of a record collection: the grand total and a
// per-category breakdown. Categories without records carry no entry.
type Summary struct {
	Total      Money
	ByCategory map[Category]Money
}

// Summarize reduces a collection of expenses into a Summary. The input is
// never mutated and the result does not depend on record order. Sums are
// accumulated in cents.
func Summarize(records []Expense) Summary {
	s := Summary{ByCategory: make(map[Category]Money)}
	for _, e := range records {
		s.Total.Cents += e.Amount.Cents
		byCat := s.ByCategory[e.Category]
		byCat.Cents += e.Amount.Cents
		s.ByCategory[e.Category] = byCat
	}
	return s
}
