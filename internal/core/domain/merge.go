package domain

// MergePolicy names how incoming canonical fields combine with a stored
// draft. The two policies are not equivalent and the call sites rely on the
// difference: uploads overlay, calculations gap-fill.
type MergePolicy string

const (
	// MergeOverlay replaces the stored value for every incoming key,
	// including incoming zeros. Keys absent from the incoming set are left
	// untouched. Used when ingesting extracted documents and when saving
	// form sections.
	MergeOverlay MergePolicy = "overlay"

	// MergeGapFill keeps the incoming value and substitutes the stored one
	// only for keys the caller omitted or supplied as numeric zero. A zero
	// a user typed on purpose is indistinguishable from "unset" here; that
	// ambiguity is inherited behavior and callers depend on it.
	MergeGapFill MergePolicy = "gap_fill"
)

// Merge combines stored and incoming fields under the given policy and
// returns a new map; neither argument is mutated.
func Merge(stored, incoming CanonicalFields, policy MergePolicy) CanonicalFields {
	switch policy {
	case MergeGapFill:
		out := incoming.Clone()
		for k, v := range stored {
			current, ok := out[k]
			if !ok || isNumericZero(current) {
				out[k] = v
			}
		}
		return out
	default:
		out := stored.Clone()
		for k, v := range incoming {
			out[k] = v
		}
		return out
	}
}

// isNumericZero reports whether v is a number equal to zero. Strings never
// qualify: "0" or "" supplied by a caller does not trigger gap-fill.
func isNumericZero(v any) bool {
	switch n := v.(type) {
	case float64:
		return n == 0
	case float32:
		return n == 0
	case int:
		return n == 0
	case int32:
		return n == 0
	case int64:
		return n == 0
	default:
		return false
	}
}
