package prop

import (
	"os"
	"strconv"
	"sync"
	"time"
)

var (
	globalSeedOnce sync.Once
	globalSeed     int64
)

// globalSeedCached returns the process-wide seed, derived once from
// PROPTEST_SEED if set, else from the wall clock at first call, and stable
// for the remainder of the process per the spec's "global seed" contract.
func globalSeedCached() int64 {
	globalSeedOnce.Do(func() {
		if raw, ok := os.LookupEnv("PROPTEST_SEED"); ok {
			if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
				globalSeed = v
				return
			}
		}
		globalSeed = time.Now().UnixNano()
	})
	return globalSeed
}
