package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-morph/engine/exporter"
	"github.com/Carmen-Shannon/oxy-morph/engine/loader"
	"github.com/Carmen-Shannon/oxy-morph/engine/morph"
	"github.com/Carmen-Shannon/oxy-morph/internal/config"
	"github.com/qmuntal/gltf"
)

func main() {
	flags := config.BindFlags(flag.CommandLine)
	output := flag.String("o", "morph.glb", "Output file; .glb writes glTF with morph targets, .bin the raw vertex buffer")
	weightA := flag.Float64("weight-a", 0, "Default weight of the first target in the glb")
	weightB := flag.Float64("weight-b", 0, "Default weight of the second target in the glb")
	flag.Parse()

	cfg, err := config.LoadWithFlags(*flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ldr := loader.NewLoader(loader.WithWorkers(cfg.Workers))
	poses, err := ldr.LoadPoses(cfg.Models.Base, cfg.Models.PoseA, cfg.Models.PoseB)
	ldr.Close()
	if err != nil {
		log.Fatalf("Failed to load poses: %v", err)
	}

	var bakeOpts []morph.BakeOption
	if cfg.Models.StrictTopology {
		bakeOpts = append(bakeOpts, morph.WithStrictTopology())
	}
	vertices, err := morph.Bake(poses.Base, poses.PoseA, poses.PoseB, bakeOpts...)
	if err != nil {
		log.Fatalf("Failed to bake morph targets: %v", err)
	}

	ext := strings.ToLower(filepath.Ext(*output))
	if ext != ".glb" && ext != ".bin" {
		log.Fatalf("Unsupported output format %q, want .glb or .bin", ext)
	}

	var doc *gltf.Document
	if ext == ".glb" {
		doc, err = exporter.BuildDocument(vertices,
			exporter.WithName(poses.Base.Name),
			exporter.WithWeights(float32(*weightA), float32(*weightB)),
			exporter.WithTargetNames(poses.PoseA.Name, poses.PoseB.Name),
		)
		if err != nil {
			log.Fatalf("Failed to build glTF document: %v", err)
		}
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *output, err)
	}
	w := bufio.NewWriter(f)

	var n int
	if doc != nil {
		n, err = exporter.WriteGLB(w, doc)
	} else {
		n, err = exporter.WriteRaw(w, vertices)
	}
	if err == nil {
		err = w.Flush()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		log.Fatalf("Failed to write %s: %v", *output, err)
	}

	box := morph.Bounds(vertices)
	fmt.Printf("%s: %d triangles, %d vertices, %d bytes\n", *output, poses.Base.FaceCount(), len(vertices), n)
	fmt.Printf("bounds: min %v max %v\n", box.Min, box.Max)
	if *weightA != 0 || *weightB != 0 {
		blended := morph.BlendedBounds(vertices, float32(*weightA), float32(*weightB))
		fmt.Printf("bounds at weights %.2f %.2f: min %v max %v\n", *weightA, *weightB, blended.Min, blended.Max)
	}
}
