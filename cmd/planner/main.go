package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lintang-b-s/waypointx/pkg/datastructure"
	"github.com/lintang-b-s/waypointx/pkg/engine"
	"github.com/lintang-b-s/waypointx/pkg/logger"
	"github.com/lintang-b-s/waypointx/pkg/util"
	"go.uber.org/zap"
)

var (
	addressesFile = flag.String("addresses", "", "file with one address per line (default: built-in KwaZulu-Natal addresses)")
	outFile       = flag.String("out", "img.png", "where to write the static map of the route")
	timeout       = flag.Duration("timeout", 0, "stop searching after this long and print the best route so far (0 = no limit)")
)

var defaultAddresses = []string{
	"115 St Andrew's Drive, Durban North, KwaZulu-Natal, South Africa",
	"67 Boshoff Street, Pietermaritzburg, KwaZulu-Natal, South Africa",
	"4 Paul Avenue, Fairview, Empangeni, KwaZulu-Natal, South Africa",
	"166 Kerk Street, Vryheid, KwaZulu-Natal, South Africa",
	"9 Margaret Street, Ixopo, KwaZulu-Natal, South Africa",
	"16 Poort Road, Ladysmith, KwaZulu-Natal, South Africa",
}

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Fatal("planning failed", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	addresses := defaultAddresses
	if *addressesFile != "" {
		var err error
		addresses, err = readAddresses(*addressesFile)
		if err != nil {
			return err
		}
	}

	routingEngine, err := engine.NewEngine(logger, true)
	if err != nil {
		return err
	}
	if !routingEngine.IsOnline() {
		logger.Warn("offline mode only understands \"lat,lon\" addresses")
	}

	waypoints := make([]datastructure.Waypoint, len(addresses))
	for i, address := range addresses {
		waypoints[i] = datastructure.NewWaypoint(address)
	}

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	planned, err := routingEngine.GetRoutingService().PlanRoute(ctx, waypoints)
	if err != nil {
		return err
	}

	fmt.Println("The optimal route is as follows:")
	for i, w := range planned.GetOrderedWaypoints() {
		fmt.Printf("%d: %s\n", i+1, w.Label())
	}
	fmt.Printf("Expected travel time for the optimal route: %.2f minutes\n",
		util.SecondsToMinutes(planned.GetTotalCost()))
	if !planned.IsComplete() {
		fmt.Printf("Search stopped early after %d orderings; the route above may not be optimal\n",
			planned.GetEvaluated())
	}

	path := planned.GetPath()
	if path == nil || !path.HasImage() {
		return nil
	}
	if err := os.WriteFile(*outFile, path.GetImage(), 0o644); err != nil {
		return fmt.Errorf("write route map: %w", err)
	}
	logger.Info("route map written", zap.String("file", *outFile), zap.String("format", path.GetImageFormat()))
	return nil
}

func readAddresses(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	addresses := make([]string, 0)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		addresses = append(addresses, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return addresses, nil
}
