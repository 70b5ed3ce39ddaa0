package reconcile

// MergeRecords combines two records sharing key, field by field:
//
//   - both present: A's value (A wins conflicts silently)
//   - A missing:    B's value + "(f1)"
//   - B missing:    A's value + "(f2)"
//   - both missing: "(f1)"
//
// The output width is the wider of the two records; fields beyond a record's
// width count as missing on that side.
func MergeRecords(key string, a, b Record) ReconciledRecord {
	width := max(a.Width(), b.Width(), 1)
	merged := make(ReconciledRecord, width)
	merged[0] = key

	for i := 1; i < width; i++ {
		fa, fb := a.Field(i), b.Field(i)
		switch {
		case fa.Present && fb.Present:
			merged[i] = fa.Value
		case !fa.Present:
			merged[i] = fb.Value + MarkerMissingA
		default:
			merged[i] = fa.Value + MarkerMissingB
		}
	}
	return merged
}

// MarkMissing renders a record present on one side only. Absent fields are
// replaced by marker; present fields pass through unchanged.
func MarkMissing(r Record, marker string) ReconciledRecord {
	marked := make(ReconciledRecord, max(r.Width(), 1))
	marked[0] = r.Key()
	for i := 1; i < len(marked); i++ {
		f := r.Field(i)
		if f.Present {
			marked[i] = f.Value
		} else {
			marked[i] = marker
		}
	}
	return marked
}

// Conflicts counts value fields present in both records with different values.
func Conflicts(a, b Record) int {
	n := 0
	for i := 1; i < min(a.Width(), b.Width()); i++ {
		fa, fb := a.Fields[i], b.Fields[i]
		if fa.Present && fb.Present && fa.Value != fb.Value {
			n++
		}
	}
	return n
}
