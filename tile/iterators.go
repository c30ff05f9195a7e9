package tile

import (
	"errors"
	"iter"
)

var errVisitCancelled = errors.New("visit cancelled")

// IterTiles returns an iterator over all tiles of the visitor.
// It yields tile indices and their encoded records. Iteration may panic on unrecoverable errors.
func IterTiles(r Visitor) iter.Seq2[Index, string] {
	return func(yield func(Index, string) bool) {
		err := r.VisitTiles(func(index Index, record string) error {
			if !yield(index, record) {
				return errVisitCancelled
			}
			return nil
		})
		if err != nil && err != errVisitCancelled {
			panic(err)
		}
	}
}
