package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"runtime"
	"time"

	log "github.com/lintang-b-s/waypointx/pkg/logger"
	"github.com/lintang-b-s/waypointx/pkg/routesearch"
	"github.com/lintang-b-s/waypointx/pkg/util"
	"golang.org/x/exp/rand"
)

var (
	queries  = flag.Int("queries", 20, "number of random cost matrices per size")
	minSize  = flag.Int("min_size", 2, "smallest number of waypoints")
	maxSize  = flag.Int("max_size", 9, "largest number of waypoints")
	maxCost  = flag.Float64("max_cost", 3600, "upper bound of a random edge cost")
	workers  = flag.Int("workers", 0, "parallel search workers (0 = number of CPUs)")
	seed     = flag.Uint64("seed", 0, "random seed (0 = time based)")
	intCosts = flag.Bool("int_costs", false, "draw integer costs so ties are common")
)

func main() {
	flag.Parse()
	logger, err := log.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	s := *seed
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}
	rd := rand.New(rand.NewSource(s))
	sugar.Infof("seed %d", s)

	numWorkers := *workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	ctx := context.Background()
	mismatches := 0
	for n := *minSize; n <= *maxSize; n++ {
		var seqTotal, parTotal time.Duration
		for q := 0; q < *queries; q++ {
			costs := randomCostMatrix(rd, n, *maxCost, *intCosts)

			start := time.Now()
			seq, err := routesearch.FindOptimalRoute(costs)
			if err != nil {
				panic(err)
			}
			seqTotal += time.Since(start)

			start = time.Now()
			par, err := routesearch.FindOptimalRouteParallel(ctx, costs, numWorkers)
			if err != nil {
				panic(err)
			}
			parTotal += time.Since(start)

			if !sameRoute(seq.Route, par.Route) || seq.Cost != par.Cost {
				mismatches++
				sugar.Errorf("n=%d query=%d: sequential %v (%.3f) != parallel %v (%.3f)",
					n, q, seq.Route, seq.Cost, par.Route, par.Cost)
			}
			if math.Abs(seq.Cost-routesearch.RouteCost(costs, seq.Route)) > 1e-9 {
				sugar.Errorf("n=%d query=%d: reported cost %.3f differs from route cost", n, q, seq.Cost)
			}
		}

		sugar.Infof("n=%d permutations=%d sequential avg=%v parallel avg=%v speedup=%s",
			n, util.Factorial(n), seqTotal/time.Duration(*queries), parTotal/time.Duration(*queries),
			speedup(seqTotal, parTotal))
	}

	if mismatches > 0 {
		sugar.Fatalf("%d queries disagree between sequential and parallel search", mismatches)
	}
	sugar.Info("sequential and parallel search agree on every query")
}

// randomCostMatrix draws an asymmetric matrix with a zero diagonal.
func randomCostMatrix(rd *rand.Rand, n int, maxCost float64, integral bool) routesearch.CostMatrix {
	costs := make(routesearch.CostMatrix, n)
	for i := range costs {
		costs[i] = make([]float64, n)
		for j := range costs[i] {
			if i == j {
				continue
			}
			if integral {
				costs[i][j] = float64(rd.Intn(int(maxCost) + 1))
			} else {
				costs[i][j] = rd.Float64() * maxCost
			}
		}
	}
	return costs
}

func sameRoute(a, b routesearch.Route) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func speedup(seq, par time.Duration) string {
	if par == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.2fx", float64(seq)/float64(par))
}
