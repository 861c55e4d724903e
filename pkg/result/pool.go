package result

import (
	"strings"
	"sync"
)

// builderPool is a concurrent free-list for the builders behind message
// concatenation. A fetched builder is exclusively owned until returned;
// returning resets it. An empty pool allocates instead of blocking.
var builderPool = sync.Pool{
	New: func() any { return new(strings.Builder) },
}

func joinMessages(existing, added string) string {
	b := builderPool.Get().(*strings.Builder)
	b.Grow(len(existing) + 1 + len(added))
	b.WriteString(existing)
	b.WriteByte('\n')
	b.WriteString(added)
	joined := b.String()
	b.Reset()
	builderPool.Put(b)
	return joined
}
