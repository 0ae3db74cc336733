package sessiondir

import (
	"github.com/google/btree"

	"github.com/Nadia-Adaptive/sessiondir/record"
)

// byIDItem is a btree.Item keyed by session id. It is the allowed
// optimisation the design notes call out for the source's linear
// lookup_by_id scan, grounded on the teacher's keydir.BTree Item/Less
// pattern (there keyed by []byte, here by record.SessionID).
type byIDItem struct {
	id  record.SessionID
	ctx *record.Context
}

func (i *byIDItem) Less(than btree.Item) bool {
	return i.id < than.(*byIDItem).id
}

const byIDDegree = 32

func newByIDIndex() *btree.BTree {
	return btree.New(byIDDegree)
}

func byIDPut(tree *btree.BTree, ctx *record.Context) {
	tree.ReplaceOrInsert(&byIDItem{id: ctx.SessionID, ctx: ctx})
}

func byIDGet(tree *btree.BTree, id record.SessionID) *record.Context {
	item := tree.Get(&byIDItem{id: id})
	if item == nil {
		return nil
	}
	return item.(*byIDItem).ctx
}
