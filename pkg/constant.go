package pkg

const (
	// INF_WEIGHT marks an edge that cannot be travelled. Cost matrices may
	// carry it on the diagonal, which the search never reads.
	INF_WEIGHT float64 = 1e15
)
