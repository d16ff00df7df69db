// Command hubbench drives a synthetic read/write workload through the hub
// cache and exposes Prometheus metrics and, optionally, pprof.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/hubcache/cache"
	"github.com/IvanBrykalov/hubcache/internal/config"
	"github.com/IvanBrykalov/hubcache/internal/util"
	pmet "github.com/IvanBrykalov/hubcache/metrics/prom"
	"github.com/IvanBrykalov/hubcache/policy"
	"github.com/IvanBrykalov/hubcache/policy/fifo"
	"github.com/IvanBrykalov/hubcache/policy/lru"
	"github.com/IvanBrykalov/hubcache/policy/twoq"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("hubbench: %v", err)
	}

	if addr := cfg.Server.PprofAddr; addr != "" {
		go func() {
			log.Printf("pprof: serving at %s", addr)
			log.Println(http.ListenAndServe(addr, nil))
		}()
	}

	metrics := pmet.New(nil, "hubcache", "bench", nil)
	if addr := cfg.Server.MetricsAddr; addr != "" {
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			log.Printf("metrics: serving at %s", addr)
			log.Println(http.ListenAndServe(addr, nil))
		}()
	}

	pol, err := buildPolicy(cfg.Cache)
	if err != nil {
		log.Fatalf("hubbench: %v", err)
	}
	loadCost := cfg.Workload.LoadCost
	c := cache.New[string, string](cache.Options[string, string]{
		MaxSize:       cfg.Cache.MaxSize,
		DefaultTTL:    cfg.Cache.DefaultTTL,
		Shards:        cfg.Cache.Shards,
		Policy:        pol,
		SweepInterval: cfg.Cache.SweepInterval,
		Metrics:       metrics,
		Loader: func(ctx context.Context, k string) (string, error) {
			if loadCost > 0 {
				select {
				case <-time.After(loadCost):
				case <-ctx.Done():
					return "", ctx.Err()
				}
			}
			return "v:" + k, nil
		},
	})
	defer func() { _ = c.Close() }()

	preload := cfg.Workload.Preload
	if preload == 0 {
		preload = cfg.Cache.MaxSize / 2
	}
	for i := 0; i < preload; i++ {
		k := "k:" + strconv.Itoa(i)
		c.Set(k, "v:"+k)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.Workload.Duration)
	defer cancel()

	var reads, writes atomic.Uint64
	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.Workload.Workers; w++ {
		g.Go(func() error {
			// rand.Rand is not goroutine-safe: one generator per worker.
			r := rand.New(rand.NewSource(cfg.Workload.Seed + int64(w)*9973))
			zipf := rand.NewZipf(r, cfg.Workload.ZipfS, cfg.Workload.ZipfV, uint64(cfg.Workload.Keys-1))
			for ctx.Err() == nil {
				k := "k:" + strconv.FormatUint(zipf.Uint64(), 10)
				if r.Intn(100) < cfg.Workload.ReadPct {
					reads.Add(1)
					if _, err := c.GetOrLoad(ctx, k); err != nil && ctx.Err() == nil {
						return fmt.Errorf("load %s: %w", k, err)
					}
					continue
				}
				writes.Add(1)
				c.Set(k, "v:"+strconv.Itoa(r.Int()))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("hubbench: %v", err)
	}
	elapsed := time.Since(start)

	st := c.Stats()
	ops := reads.Load() + writes.Load()
	fmt.Printf("policy=%s max=%d shards=%d workers=%d keys=%d dur=%v seed=%d\n",
		pol.Name(), cfg.Cache.MaxSize, cfg.Cache.Shards, cfg.Workload.Workers,
		cfg.Workload.Keys, elapsed.Round(time.Millisecond), cfg.Workload.Seed)
	fmt.Printf("ops=%d (%.0f ops/s)  reads=%d  writes=%d\n",
		ops, float64(ops)/elapsed.Seconds(), reads.Load(), writes.Load())
	fmt.Printf("hits=%d  misses=%d  hit-rate=%.2f%%  evictions=%d  entries=%d\n",
		st.Hits, st.Misses, st.HitRate()*100, st.Evictions, st.Entries)
}

// loadConfig builds the run settings: defaults, then the optional YAML
// file, then any flag given explicitly on the command line.
func loadConfig(args []string) (*config.Config, error) {
	def := config.Default()
	fs := flag.NewFlagSet("hubbench", flag.ContinueOnError)
	var (
		path = fs.String("config", "", "YAML config file (optional)")

		maxSize = fs.Int("max", def.Cache.MaxSize, "cache capacity (entries)")
		ttl     = fs.Duration("ttl", def.Cache.DefaultTTL, "default entry TTL")
		shards  = fs.Int("shards", def.Cache.Shards, "shards (0/1 = single, -1 = auto)")
		pol     = fs.String("policy", def.Cache.Policy, "eviction policy: fifo | lru | 2q")
		sweep   = fs.Duration("sweep", def.Cache.SweepInterval, "background sweep interval (0 = lazy only)")

		workers  = fs.Int("workers", def.Workload.Workers, "worker goroutines")
		duration = fs.Duration("duration", def.Workload.Duration, "run duration")
		readPct  = fs.Int("reads", def.Workload.ReadPct, "read percentage [0..100]")
		keys     = fs.Int("keys", def.Workload.Keys, "keyspace size")
		zipfS    = fs.Float64("zipf_s", def.Workload.ZipfS, "Zipf s > 1 (skew)")
		zipfV    = fs.Float64("zipf_v", def.Workload.ZipfV, "Zipf v >= 1")
		seed     = fs.Int64("seed", def.Workload.Seed, "random seed")
		preload  = fs.Int("preload", def.Workload.Preload, "preload entries (0 = max/2)")
		loadCost = fs.Duration("load_cost", def.Workload.LoadCost, "simulated Loader latency")

		metricsAddr = fs.String("http", def.Server.MetricsAddr, "serve Prometheus metrics at addr (empty = off)")
		pprofAddr   = fs.String("pprof", def.Server.PprofAddr, "serve pprof at addr (empty = off)")
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &def
	if *path != "" {
		var err error
		if cfg, err = config.Load(*path); err != nil {
			return nil, err
		}
	} else {
		cfg.ApplyEnv()
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "max":
			cfg.Cache.MaxSize = *maxSize
		case "ttl":
			cfg.Cache.DefaultTTL = *ttl
		case "shards":
			cfg.Cache.Shards = *shards
		case "policy":
			cfg.Cache.Policy = *pol
		case "sweep":
			cfg.Cache.SweepInterval = *sweep
		case "workers":
			cfg.Workload.Workers = *workers
		case "duration":
			cfg.Workload.Duration = *duration
		case "reads":
			cfg.Workload.ReadPct = *readPct
		case "keys":
			cfg.Workload.Keys = *keys
		case "zipf_s":
			cfg.Workload.ZipfS = *zipfS
		case "zipf_v":
			cfg.Workload.ZipfV = *zipfV
		case "seed":
			cfg.Workload.Seed = *seed
		case "preload":
			cfg.Workload.Preload = *preload
		case "load_cost":
			cfg.Workload.LoadCost = *loadCost
		case "http":
			cfg.Server.MetricsAddr = *metricsAddr
		case "pprof":
			cfg.Server.PprofAddr = *pprofAddr
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildPolicy(cc config.CacheConfig) (policy.Policy[string, string], error) {
	switch strings.ToLower(cc.Policy) {
	case "fifo":
		return fifo.New[string, string](), nil
	case "lru":
		return lru.New[string, string](), nil
	case "2q":
		return twoq.New[string, string](twoQSizes(cc)), nil
	default:
		return nil, fmt.Errorf("unknown policy %q (use fifo, lru or 2q)", cc.Policy)
	}
}

// twoQSizes returns per-shard probation and ghost capacities, using the same
// shard count the cache derives from the config.
func twoQSizes(cc config.CacheConfig) (probation, ghosts int) {
	perShard := cc.MaxSize / util.ShardCount(cc.Shards, cc.MaxSize)
	return perShard / 4, perShard / 2
}
