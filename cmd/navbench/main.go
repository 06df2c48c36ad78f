package main

import (
	"flag"
	"log"
	"math/rand"

	"github.com/milk9111/tilenav/common"
	"github.com/milk9111/tilenav/navgrid"
	"github.com/milk9111/tilenav/pathfind"
	"github.com/milk9111/tilenav/system"
)

type result struct {
	found, unreachable, capped int
	expanded                   int
	cells, waypoints           int
	lineClear                  int
}

func main() {
	levelPath := flag.String("level", "arena.json", "level in levels/ or a path on disk")
	profilePath := flag.String("profile", "default.yaml", "navigation profile in profiles/ or a path on disk")
	physics := flag.Bool("physics", false, "block cells under physics layers and obstacle entities")
	searches := flag.Int("n", 1000, "number of random searches")
	seed := flag.Int64("seed", 1, "seed for endpoint selection")
	flag.Parse()

	world, err := system.NewWorld(system.Config{
		LevelPath:   *levelPath,
		ProfilePath: *profilePath,
		Physics:     *physics,
	})
	if err != nil {
		log.Fatal(err)
	}

	cells := walkableCells(world.Grid)
	if len(cells) < 2 {
		log.Fatalf("navbench: %s has %d walkable cells", world.Level.Name, len(cells))
	}

	world.Timer.Reset()
	rng := rand.New(rand.NewSource(*seed))
	res := run(world.Finder, cells, *searches, rng)

	stats := world.Timer.Stats(pathfind.ProfileScope)
	log.Printf("navbench: level=%s profile=%s grid=%dx%d walkable=%d floor=%.2f",
		world.Level.Name, world.Profile.Name, world.Grid.Width(), world.Grid.Height(), len(cells), world.Grid.CostFloor())
	log.Printf("navbench: searches=%d found=%d unreachable=%d capped=%d",
		stats.Calls, res.found, res.unreachable, res.capped)
	log.Printf("navbench: time total=%s mean=%s max=%s", stats.Total, stats.Mean(), stats.Max)
	if stats.Calls > 0 {
		log.Printf("navbench: mean expanded=%.1f", float64(res.expanded)/float64(stats.Calls))
	}
	if res.found > 0 {
		log.Printf("navbench: mean cells=%.1f waypoints=%.1f line-of-sight=%d",
			float64(res.cells)/float64(res.found), float64(res.waypoints)/float64(res.found), res.lineClear)
	}
}

func walkableCells(grid *navgrid.Grid) []common.Point {
	var cells []common.Point
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			if grid.IsWalkable(x, y) {
				cells = append(cells, common.Point{X: x, Y: y})
			}
		}
	}
	return cells
}

func run(finder *pathfind.Pathfinder, cells []common.Point, n int, rng *rand.Rand) result {
	var res result
	var trace pathfind.Trace
	opts := finder.Options()
	opts.Trace = &trace

	for i := 0; i < n; i++ {
		start := cells[rng.Intn(len(cells))]
		goal := cells[rng.Intn(len(cells))]

		path := finder.FindEx(start.X, start.Y, goal.X, goal.Y, opts)
		res.expanded += trace.Expanded
		switch {
		case path != nil:
			res.found++
			res.cells += path.Len()
			res.waypoints += pathfind.Simplify(path).Len()
			if finder.LineClear(start.X, start.Y, goal.X, goal.Y) {
				res.lineClear++
			}
			path.Release()
		case trace.Capped:
			res.capped++
		default:
			res.unreachable++
		}
	}
	return res
}
