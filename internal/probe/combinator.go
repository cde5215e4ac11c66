package probe

// FirstSuccess runs attempt for each candidate in order and returns the first
// result accepted by ok. When no result is accepted it returns the result of
// the last candidate. tried is false only when candidates is empty.
func FirstSuccess[C, R any](candidates []C, attempt func(C) R, ok func(R) bool) (result R, tried bool) {
	for _, c := range candidates {
		result = attempt(c)
		tried = true
		if ok(result) {
			return result, true
		}
	}
	return result, tried
}
