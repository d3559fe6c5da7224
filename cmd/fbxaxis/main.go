package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"

	"fbx-scene-importer/internal/axis"
	"fbx-scene-importer/internal/config"
	"fbx-scene-importer/internal/fbxmeta"
	"fbx-scene-importer/internal/logger"
	"fbx-scene-importer/internal/mathutil"
	"fbx-scene-importer/internal/session"
)

func main() {
	configFile := flag.String("config", "", "Path to importer config (.json or .yaml)")
	propsFile := flag.String("props", "", "Path to GlobalSettings properties JSON (default: FBX defaults)")
	up := flag.String("up", "", "Target up vector: x, y or z")
	front := flag.String("front", "", "Target front parity: odd or even")
	hand := flag.String("hand", "", "Target handedness: left or right")
	unit := flag.Float64("unit", 0, "Target centimetres per unit (default: 100)")
	apply := flag.String("apply", "", "Where to apply the correction: root or vertices")
	logLevel := flag.String("log", "", "Log level: debug, info, warn, error")
	verbose := flag.Bool("v", false, "Dump the settings record")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		UpVector:         *up,
		FrontVector:      *front,
		CoordinateSystem: *hand,
		UnitScaleFactor:  *unit,
		Apply:            *apply,
		LogLevel:         *logLevel,
	})

	log := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.LogLevel),
		Output:     os.Stderr,
		JSON:       cfg.LogJSON,
		TimeFormat: "15:04:05",
	})

	target, err := cfg.Target()
	if err != nil {
		log.Error("invalid target convention", "err", err)
		os.Exit(1)
	}

	props := fbxmeta.Properties{}
	name := "<defaults>"
	if *propsFile != "" {
		f, err := os.Open(*propsFile)
		if err != nil {
			log.Error("cannot open properties", "path", *propsFile, "err", err)
			os.Exit(1)
		}
		props, err = fbxmeta.LoadJSON(f)
		f.Close()
		if err != nil {
			log.Error("cannot read properties", "path", *propsFile, "err", err)
			os.Exit(1)
		}
		name = *propsFile
	}

	meta, err := fbxmeta.Decode(props)
	if err != nil {
		log.Error("invalid metadata", "err", err)
		os.Exit(1)
	}

	if err := report(name, meta, target, log, *verbose); err != nil {
		log.Error("import aborted", "err", err)
		os.Exit(1)
	}
}

func report(name string, meta fbxmeta.Metadata, target config.Target, log logger.Logger, verbose bool) error {
	s, err := session.Open(name, meta, target, session.Options{Logger: log})
	if err != nil {
		return err
	}
	defer s.Close()

	gs := s.Settings()
	defer gs.Release()

	c, err := s.Correction()
	if err != nil {
		return err
	}

	fmt.Printf("Document: %s\n", name)
	fmt.Printf("Original: %-24s %.4g cm/unit\n", axis.Original(gs), gs.OriginalUnitScaleFactor())
	fmt.Printf("Target:   %-24s %.4g cm/unit\n", axis.Target(gs), gs.UnitScaleFactor())
	if meta.ConvertedOnExport() {
		fmt.Printf("Exported from: up axis %d, %.4g cm/unit\n", meta.OriginalUpAxis, meta.OriginalUnitScaleFactor)
	}
	fmt.Printf("Apply:    %s\n", target.Apply)
	fmt.Printf("Scale:    %g\n", c.Scale)
	fmt.Printf("Reflects: %v\n", c.Reflects())
	if q, ok := c.Quaternion(); ok {
		fmt.Printf("Rotation: quat(%.4f, %.4f, %.4f, %.4f)\n", q[0], q[1], q[2], q[3])
	}
	printMatrix(c.Matrix())

	if verbose {
		spew.Fdump(os.Stdout, meta)
		spew.Fdump(os.Stdout, gs)
	}
	return nil
}

func printMatrix(m mathutil.Mat4) {
	fmt.Println("Matrix:")
	for r := 0; r < 4; r++ {
		fmt.Printf("  [% 8.4f % 8.4f % 8.4f % 8.4f]\n", m[r*4], m[r*4+1], m[r*4+2], m[r*4+3])
	}
}
