package store

// IncrOutcome classifies how an increment UpdateFunc resolved, since
// UpdateFunc's own (Value, bool) return only describes the post-state, not
// why it got there. The outcome pointer is filled in synchronously by the
// actor goroutine that runs the closure, so it is safe to read the moment
// Handle.Update returns.
type IncrOutcome int

const (
	IncrOK IncrOutcome = iota
	IncrNotInteger
	IncrOverflow
)

// IncrUpdateFunc builds the single point of compound mutation behind
// INCR: present integer -> checked add of delta; present non-integer ->
// left unchanged; absent -> delta. On overflow the outcome is IncrOverflow
// and the stored value is left exactly as it was.
func IncrUpdateFunc(delta int64) (UpdateFunc, *IncrOutcome) {
	outcome := new(IncrOutcome)
	fn := func(cur Value, present bool) (Value, bool) {
		if !present {
			*outcome = IncrOK
			return NewIntValue(delta), true
		}
		if cur.Kind != KindInteger {
			*outcome = IncrNotInteger
			return cur, true
		}
		sum, ok := addInt64(cur.Int.Int64(), delta)
		if !ok {
			*outcome = IncrOverflow
			return cur, true
		}
		*outcome = IncrOK
		return NewIntValue(sum), true
	}
	return fn, outcome
}

func addInt64(a, b int64) (int64, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}
