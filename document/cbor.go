package document

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// MaxDepth is the deepest tree the CBOR and snapshot forms carry. A tree of
// depth d nests CBOR maps and arrays 2d-1 levels deep, since every node map
// holds its children array. The decoder allows one spare level.
const MaxDepth = 256

// MaxChildren bounds the children of one node in the CBOR form.
const MaxChildren = 1 << 20

var ErrTooDeep = errors.New("document: tree too deep")

// encMode uses Core Deterministic Encoding so that equal trees always produce
// identical bytes.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("document: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		MaxNestedLevels:  2 * MaxDepth,
		MaxArrayElements: MaxChildren,
	}.DecMode()
	if err != nil {
		panic("document: CBOR decoder initialization failed: " + err.Error())
	}
}

// EncodeCBOR renders the tree in its binary snapshot form.
func EncodeCBOR(n *Node) ([]byte, error) {
	if exceedsDepth(n, MaxDepth) {
		return nil, fmt.Errorf("%w: more than %d levels", ErrTooDeep, MaxDepth)
	}

	out, err := encMode.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("document: encoding cbor: %w", err)
	}

	return out, nil
}

// ParseCBOR reads a tree produced by EncodeCBOR.
func ParseCBOR(data []byte) (*Node, error) {
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}

	var n Node
	if err := decMode.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("document: parsing cbor: %w", err)
	}
	if n.Name == "" {
		return nil, ErrEmptyDocument
	}

	return &n, nil
}

// exceedsDepth reports whether the tree under n is deeper than limit levels.
func exceedsDepth(n *Node, limit int) bool {
	if limit <= 0 {
		return true
	}

	for _, c := range n.Children {
		if exceedsDepth(c, limit-1) {
			return true
		}
	}

	return false
}
