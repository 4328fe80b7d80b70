package annotation

// HasDifferences reports whether two normalized documents disagree
// semantically.  The comparison is symmetric and ignores annotation order:
//
//  1. the unordered sets of (role, text, char_span) identities must be equal;
//  2. trigger presence must match;
//  3. when both triggers are present, their text and character offsets must
//     match (token offsets are derived and not compared).
func HasDifferences(a, b AnnotatedDocument) bool {
	if !keySetsEqual(keySet(a), keySet(b)) {
		return true
	}
	return triggersDiffer(a.Trigger, b.Trigger)
}

func keySetsEqual(x, y map[Key]struct{}) bool {
	if len(x) != len(y) {
		return false
	}
	for k := range x {
		if _, ok := y[k]; !ok {
			return false
		}
	}
	return true
}

func triggersDiffer(a, b *Trigger) bool {
	if (a == nil) != (b == nil) {
		return true
	}
	if a == nil {
		return false
	}
	return a.Text != b.Text || a.StartChar != b.StartChar || a.EndChar != b.EndChar
}
