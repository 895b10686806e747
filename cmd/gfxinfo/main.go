// Command gfxinfo lists the registered graphics backends and probes which
// ones can initialize on this machine.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gogpu/gfx/backend"
	_ "github.com/gogpu/gfx/backend/gl"
	_ "github.com/gogpu/gfx/backend/headless"
	_ "github.com/gogpu/gfx/backend/wgpu"
)

func main() {
	var (
		probe = flag.Bool("probe", false, "initialize each available backend")
		name  = flag.String("backend", "", "probe a single backend by name")
	)
	flag.Parse()

	if *name != "" {
		b, err := backend.Get(*name)
		if err != nil {
			log.Fatalf("Unknown backend: %v", err)
		}
		probeBackend(b)
		return
	}

	names := backend.List()
	available := make(map[string]bool)
	for _, n := range backend.Available() {
		available[n] = true
	}

	fmt.Printf("%-12s %s\n", "BACKEND", "AVAILABLE")
	for _, n := range names {
		fmt.Printf("%-12s %v\n", n, available[n])
	}

	if def, err := backend.Default(); err == nil {
		fmt.Printf("\ndefault: %s\n", def.Name())
	} else {
		fmt.Printf("\ndefault: none (%v)\n", err)
	}

	if *probe {
		for _, n := range names {
			if !available[n] {
				continue
			}
			b, err := backend.Get(n)
			if err != nil {
				continue
			}
			probeBackend(b)
		}
	}
}

func probeBackend(b backend.Backend) {
	fmt.Printf("\nprobing %s...\n", b.Name())
	if err := b.Init(); err != nil {
		fmt.Printf("  init failed: %v\n", err)
		os.Exit(1)
	}
	defer b.Terminate()

	buf, err := b.CreateBuffer()
	if err != nil {
		fmt.Printf("  buffer allocation failed: %v\n", err)
		return
	}
	b.DeleteBuffer(buf)
	fmt.Println("  ok")
}
