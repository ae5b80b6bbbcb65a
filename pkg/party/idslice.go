package party

import (
	"sort"

	"github.com/near/threshold-signatures/pkg/math/curve"
)

// IDSlice is a sorted, deduplicated registry of participant IDs. It is the
// unit every round operates over: the set of participants a polynomial was
// shared against, and the set a Lagrange coefficient is computed relative to.
type IDSlice []ID

func (ids IDSlice) Len() int           { return len(ids) }
func (ids IDSlice) Less(i, j int) bool { return ids[i] < ids[j] }
func (ids IDSlice) Swap(i, j int)      { ids[i], ids[j] = ids[j], ids[i] }

// Sort is a convenience method: x.Sort() calls sort.Sort(x).
func (ids IDSlice) Sort() { sort.Sort(ids) }

// Sorted reports whether ids is sorted and contains no duplicates.
func (ids IDSlice) Sorted() bool {
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			return false
		}
	}
	return true
}

// Search returns the index of id in ids and whether it was found.
// Assumes ids is sorted.
func (ids IDSlice) Search(id ID) (int, bool) {
	i := sort.Search(len(ids), func(i int) bool { return ids[i] >= id })
	if i < len(ids) && ids[i] == id {
		return i, true
	}
	return 0, false
}

// Contains reports whether id appears in ids. Assumes ids is sorted.
func (ids IDSlice) Contains(id ID) bool {
	_, ok := ids.Search(id)
	return ok
}

// GetIndex returns the index of id in ids, or -1 if absent.
func (ids IDSlice) GetIndex(id ID) int {
	if i, ok := ids.Search(id); ok {
		return i
	}
	return -1
}

// Copy returns a sorted copy of ids.
func (ids IDSlice) Copy() IDSlice {
	out := make(IDSlice, len(ids))
	copy(out, ids)
	out.Sort()
	return out
}

// Scalar maps a participant ID to its evaluation point x_i in group's
// scalar field. The map is injective and never produces zero, satisfying
// the "x_i != 0" requirement every VSS share evaluation relies on.
func (id ID) Scalar(group curve.Curve) curve.Scalar {
	return curve.ScalarFromUint32(group, uint32(id))
}

// Lagrange returns the Lagrange coefficient l_index(0) for reconstructing
// the secret at x=0 from the shares held by the participants in ids.
//
//	            x_0 ... x_k      (excluding x_index)
//	l_index(0) = ---------------------------
//	            (x_0 - x_index) ... (x_k - x_index)
//
// ids must contain index and be sorted; callers that need the coefficient
// over a smaller reconstruction set should first take that subset.
func (ids IDSlice) Lagrange(group curve.Curve, index ID) curve.Scalar {
	num := group.NewScalar().SetUint32(1)
	denom := group.NewScalar().SetUint32(1)

	xIndex := index.Scalar(group)

	for _, id := range ids {
		if id == index {
			continue
		}
		xM := id.Scalar(group)

		num.Mul(xM)

		diff := xM.Sub(xIndex)
		denom.Mul(diff)
	}

	return num.Mul(denom.Invert())
}
