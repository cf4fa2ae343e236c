// RISF project initSimulation.go
/*
Copyright 2021 Bruce Golden and Matt Spangler

Permission is hereby granted, free of charge, to any person obtaining a copy of
this software and associated documentation files (the "Software"), to deal in
the Software without restriction, including without limitation the rights to
use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
of the Software, and to permit persons to whom the Software is furnished to do
so, subject to the following conditions:
The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/blgolden/RISFModel/RISF/climate"
	"github.com/blgolden/RISFModel/RISF/logger"
	"github.com/blgolden/RISFModel/RISF/param"
)

var cfg param.Config // the run's parameters, fixed after initSimulation

var paramFile *string   // Name of the parameter file
var climateFile *string // Weather station export (csv)
var outFile *string     // Daily results (csv)
var workers *int        // goroutines for the evaporation batch

var ingest *climate.Ingest

// Initialize the simulation
func initSimulation() {

	parseArgs()

	loadParam()

	loadClimate()

	if logger.Verbose() {
		if cfg.Comment != "" {
			fmt.Printf("Comment: %v\n\n", cfg.Comment)
		}
		m, _ := cfg.DailyManure()
		fmt.Printf("Herd: %v (%.1f gal manure/day)\n", cfg.Herd, m)
		fmt.Printf("Initial depth %.2f ft, overflow risk within %.2f ft of the top, irrigation stops at a depth of %.2f ft\n",
			cfg.InitialDepth, cfg.DRisk, cfg.DStop)
		fmt.Printf("Irrigation every %d days, %.0f-%.0f gal/acre\n",
			cfg.IrrigationInterval, cfg.Policy.MinVolPerAcre, cfg.Policy.MaxVolPerAcre)

		fmt.Println("Crop windows:")
		for _, w := range cfg.CropWindows {
			fmt.Printf("\t%v  %.2f ac  demand %.1f\n", w, w.Acreage, w.Demand())
		}

		if e, at := cfg.Geometry.RoundTripError(0, cfg.DRisk, 200); e > 0 {
			fmt.Printf("Depth/volume fits agree to within %.3f ft (worst at %.1f ft)\n", e, at)
		}
		fmt.Println()
	}
}

// Parse the arg list looking for the input files
func parseArgs() {

	paramFile = flag.String("param", "", "The RISF hjson parameter file (optional, defaults to the reference farm)")
	climateFile = flag.String("climate", "", "Daily weather station export, csv (required)")
	outFile = flag.String("out", "output.csv", "Daily results file, csv ('' for none)")
	logger.OutputMode = flag.String("outputMode", "verbose", "'verbose'(default), 'table' or 'quiet'")
	logger.User = flag.String("user", "admin", "user=[Username]")
	logger.Seed = flag.Int64("seed", 1234, "Random number generator seed (int64)")
	workers = flag.Int("workers", 0, "Goroutines for the evaporation batch (0 is one per CPU)")
	isVersion := flag.Bool("version", false, "prints the version number of RISF")

	flag.Parse()

	if *isVersion {
		fmt.Println("Version:", version)
		os.Exit(0)
	}

	if logger.Verbose() {
		fmt.Printf("\n\t*** RISF ver %v ***\n\n", version)
	}

	if *climateFile == "" {
		if logger.Verbose() {
			fmt.Printf("Error: A climate file must be provided on the command line\n\tRISF -climate=[file name]\n")
			// Print out a syntax message
			syntax := `Usage of ./RISF:
  -climate string
    	Daily weather station export, csv (required)
  -param string
    	The RISF hjson parameter file (optional)
  -out string
    	Daily results file, csv (default "output.csv")
  -outputMode string
    	'verbose', 'table' or 'quiet' (default "verbose")
  -seed int
    	Random number generator seed (int64) (default 1234)
  -user string
    	user=[Username] (default "admin")
  -workers int
    	Goroutines for the evaporation batch (default one per CPU)
  -version
	Print the version number and exit`

			fmt.Printf("\n%s\n\n", syntax)
		}
		logger.LogWriterFatal("no climate file name provided")
	}
}

// Read in the parameter hjson file, or take the reference farm
func loadParam() {
	if *paramFile == "" {
		cfg = param.Default()
		logger.LogWriter("no parameter file, using the reference farm")
		return
	}

	var err error
	cfg, err = param.LoadFile(*paramFile)
	if err != nil {
		logger.LogWriterFatal("Failed to load parameter file: " + err.Error())
	}
}

func loadClimate() {
	var err error
	ingest, err = climate.ReadFile(*climateFile, climate.ReadOptions{SkipRows: cfg.ClimateSkipRows})
	if err != nil {
		logger.LogWriterFatal("Failed to read climate file: " + err.Error())
	}
	if len(ingest.Records) == 0 {
		logger.LogWriterFatal("no usable days in " + *climateFile)
	}

	for _, d := range ingest.Dropped {
		logger.LogWriterf("climate day dropped: %v", d)
	}

	first, last := ingest.Records[0].Date, ingest.Records[len(ingest.Records)-1].Date
	logger.Printf("Climate: %d days %s to %s, %d dropped, %d with derived average temperature\n",
		len(ingest.Records), first.Format("2006-01-02"), last.Format("2006-01-02"), len(ingest.Dropped), ingest.Derived)
}
