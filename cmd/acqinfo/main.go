package main

import (
	"flag"
	"fmt"
	"math/cmplx"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"girfdata/internal/kspace"
	"girfdata/pkg/config"
	"girfdata/pkg/data"
	"girfdata/pkg/ismrmrd"
	"girfdata/pkg/visualization"
)

func main() {
	inputFile := flag.String("input", "", "ISMRMRD acquisition stream")
	configFile := flag.String("config", "girfdata.yaml", "YAML configuration file")
	maxAcqs := flag.Int("max", -1, "Maximum number of acquisitions to read (overrides config)")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	spectrum := flag.Bool("spectrum", false, "Print the dominant frequency of the first readout trajectory")
	exportSlices := flag.Bool("export-slices", false, "Export k-space magnitude slices as JPEG")
	flag.Parse()

	if *inputFile == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *maxAcqs >= 0 {
		cfg.Stream.MaxAcquisitions = *maxAcqs
	}
	if *verbose || cfg.Output.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	f, err := os.Open(*inputFile)
	if err != nil {
		log.Fatalf("Failed to open input: %v", err)
	}
	defer f.Close()

	startTime := time.Now()
	acqs, err := ismrmrd.NewReader(f).ReadAll(cfg.Stream.MaxAcquisitions)
	if err != nil {
		log.Fatalf("Failed to read acquisitions: %v", err)
	}
	if cfg.Stream.SkipNoise {
		acqs, err = skipNoise(acqs)
		if err != nil {
			log.Fatalf("Failed to filter noise readouts: %v", err)
		}
	}

	info, err := data.AcqInfoFromISMRMRDAcquisitions(acqs)
	if err != nil {
		log.Fatalf("Failed to build acquisition info: %v", err)
	}
	log.Infof("Read %d acquisitions in %s", info.Len(), time.Since(startTime))

	printSummary(info.Summary())

	if *spectrum {
		if err := printSpectrum(acqs[0], info, cfg); err != nil {
			log.Errorf("Failed to compute spectrum: %v", err)
		}
	}

	if *exportSlices {
		gd, err := kspace.Magnitude(acqs, info)
		if err != nil {
			log.Fatalf("Failed to grid k-space: %v", err)
		}
		viewer, err := visualization.NewViewer(gd)
		if err != nil {
			log.Fatalf("Failed to create viewer: %v", err)
		}
		log.Infof("Saving k-space slices to: %s", cfg.Output.SliceDir)
		if err := viewer.SaveSliceSequence("z", cfg.Output.SliceDir); err != nil {
			log.Fatalf("Failed to save slices: %v", err)
		}
	}
}

// skipNoise drops noise measurement readouts.
func skipNoise(acqs []ismrmrd.Acquisition) ([]ismrmrd.Acquisition, error) {
	kept := acqs[:0:0]
	for i, acq := range acqs {
		h, err := acq.Header()
		if err != nil {
			return nil, fmt.Errorf("acquisition %d: %w", i, err)
		}
		if h.Has(ismrmrd.FlagIsNoiseMeasurement) {
			continue
		}
		kept = append(kept, acq)
	}
	log.Debugf("skipped %d noise readouts", len(acqs)-len(kept))
	return kept, nil
}

func printSummary(s data.Summary) {
	fmt.Println("================================")
	fmt.Println("ACQUISITION SUMMARY")
	fmt.Println("================================")
	fmt.Printf("Readouts: %d (noise: %d)\n", s.Readouts, s.NoiseReadouts)
	for _, label := range data.KDimSortLabels {
		fmt.Printf("  %-11s %d\n", label+":", s.Counters[label])
	}
	fmt.Printf("Position x: [%.2f, %.2f] mm\n", s.PositionMin.X, s.PositionMax.X)
	fmt.Printf("Position y: [%.2f, %.2f] mm\n", s.PositionMin.Y, s.PositionMax.Y)
	fmt.Printf("Position z: [%.2f, %.2f] mm\n", s.PositionMin.Z, s.PositionMax.Z)
	fmt.Printf("Sample time: %.3f ± %.3f us\n", s.MeanSampleTimeUs, s.StdDevSampleTimeUs)
}

// printSpectrum prints the strongest non-DC frequency of the first
// trajectory dimension of acq.
func printSpectrum(acq ismrmrd.Acquisition, info *data.AcqInfo, cfg *config.Config) error {
	h, err := acq.Header()
	if err != nil {
		return err
	}
	rawDims := int(h.TrajectoryDimensions)
	if rawDims == 0 || len(acq.Traj) == 0 {
		return fmt.Errorf("first readout has no trajectory")
	}

	kx := make([]float64, len(acq.Traj)/rawDims)
	for i := range kx {
		kx[i] = float64(acq.Traj[i*rawDims])
	}

	dwell := cfg.DwellTime()
	if us := info.SampleTimeUs.Values()[0]; us > 0 {
		dwell = time.Duration(float64(us) * float64(time.Microsecond))
	}

	s, err := data.SpectrumFromSignal(kx, dwell, cfg.Spectrum.NFFT)
	if err != nil {
		return err
	}

	grid, values := s.Grid().Values(), s.Values().Values()
	peak := 0
	for i := 1; i < len(values); i++ {
		if peak == 0 || cmplx.Abs(values[i]) > cmplx.Abs(values[peak]) {
			peak = i
		}
	}
	fmt.Printf("Trajectory kx spectrum: peak at %.1f Hz (%d bins)\n", grid[peak], len(grid))
	return nil
}
