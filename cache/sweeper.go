package cache

import "time"

// startSweeper runs RemoveExpired every interval until Close.
// Without it, keys written once and never read stay resident until
// capacity pushes them out.
func (c *cache[K, V]) startSweeper(every time.Duration) {
	c.stop = make(chan struct{})
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		t := time.NewTicker(every)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				c.RemoveExpired()
			case <-c.stop:
				return
			}
		}
	}()
}
