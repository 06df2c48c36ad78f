package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/tilenav/system"
)

func main() {
	levelPath := flag.String("level", "arena.json", "level in levels/ or a path on disk")
	profilePath := flag.String("profile", "default.yaml", "navigation profile in profiles/ or a path on disk")
	physics := flag.Bool("physics", false, "block cells under physics layers and obstacle entities")
	agents := flag.Int("agents", 0, "extra agents to spawn at random walkable cells")
	watch := flag.Bool("watch", false, "reload profiles, scripts and levels when they change on disk")
	seed := flag.Int64("seed", 1, "seed for random agent placement")
	flag.Parse()

	world, err := system.NewWorld(system.Config{
		LevelPath:   *levelPath,
		ProfilePath: *profilePath,
		Physics:     *physics,
	})
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("tilenav")

	game := NewGame(world, *agents, *seed, *watch)
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
