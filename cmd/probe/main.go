// Command probe decodes audio sources and prints what the player would see,
// without opening an output device.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"

	core "github.com/llehouerou/tapedeck/internal/audioplayer"
	"github.com/llehouerou/tapedeck/internal/sound"
)

var (
	app     = kingpin.New("probe", "Decode audio sources and print their format")
	timeout = app.Flag("timeout", "Per-source timeout").Default("30s").Duration()
	sources = app.Arg("source", "File path, file:// or http(s):// URI").Required().Strings()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	engine := sound.NewEngine()
	failed := false
	for _, uri := range *sources {
		if err := probe(engine, sound.Source{URI: uri}); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", uri, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func probe(engine *sound.Engine, src sound.Source) error {
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	info, err := engine.Probe(ctx, src)
	if err != nil {
		return err
	}

	fmt.Println(src.URI)
	fmt.Printf("  title:    %s\n", info.Title.Title)
	if info.Title.Artist != "" {
		fmt.Printf("  artist:   %s\n", info.Title.Artist)
	}
	fmt.Printf("  format:   %d Hz, %d ch\n", info.SampleRate, info.Channels)
	fmt.Printf("  duration: %s\n", core.FormatDuration(info.Duration))
	if p, ok := src.LocalPath(); ok {
		if st, err := os.Stat(p); err == nil {
			fmt.Printf("  size:     %s, modified %s\n",
				humanize.IBytes(uint64(st.Size())), humanize.Time(st.ModTime()))
		}
	}
	return nil
}
