package browser

import (
	"sync"

	"github.com/stockops/adjustment-e2e/internal/dataset"
)

type exchange struct {
	url    string
	status int
}

// traffic keeps every response the page received, in arrival order
type traffic struct {
	mu   sync.Mutex
	seen []exchange
}

func (tr *traffic) observe(url string, status int) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.seen = append(tr.seen, exchange{url: url, status: status})
}

// mark returns the position after the last observed response
func (tr *traffic) mark() int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return len(tr.seen)
}

// next finds the first response to ep at or after position from
func (tr *traffic) next(ep dataset.Endpoint, from int) (exchange, int, bool) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	for i := from; i < len(tr.seen); i++ {
		if ep.Matches(tr.seen[i].url) {
			return tr.seen[i], i, true
		}
	}
	return exchange{}, 0, false
}
