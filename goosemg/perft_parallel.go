package goosemg

import "golang.org/x/sync/errgroup"

// PerftParallel counts leaf nodes the same way Perft does, but fans the
// root moves out across goroutines, one errgroup task per legal root move,
// each working its own copy of the board. It exists purely as a diagnostic
// speedup for perft runs; nothing on the search hot path uses it.
func PerftParallel(b *Board, depth int) (uint64, error) {
	if depth <= 0 {
		return 1, nil
	}

	moves := b.GenerateMoves()
	counts := make([]uint64, len(moves))

	var g errgroup.Group
	for i, m := range moves {
		i, m := i, m
		root := *b
		g.Go(func() error {
			if ok, st := root.MakeMove(m); ok {
				counts[i] = Perft(&root, depth-1)
				root.UnmakeMove(m, st)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var total uint64
	for _, c := range counts {
		total += c
	}
	return total, nil
}
