package search

// queueItem is an open-set entry. seq is a monotonically increasing insert
// counter: among equal FCost entries the earliest insert pops first, so the
// extract order is FIFO among ties and fully deterministic.
type queueItem[N comparable] struct {
	Node         N
	GScore       int
	FCost        int
	seq          uint64
	indexInQueue int
}

type priorityQueue[N comparable] []*queueItem[N]

func (q priorityQueue[N]) Len() int { return len(q) }

func (q priorityQueue[N]) Less(i, j int) bool {
	if q[i].FCost != q[j].FCost {
		return q[i].FCost < q[j].FCost
	}
	return q[i].seq < q[j].seq
}

func (q priorityQueue[N]) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].indexInQueue = i
	q[j].indexInQueue = j
}

func (q *priorityQueue[N]) Push(x any) {
	item := x.(*queueItem[N])
	item.indexInQueue = len(*q)
	*q = append(*q, item)
}

func (q *priorityQueue[N]) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}
