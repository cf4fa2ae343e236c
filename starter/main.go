// starter project main.go
//
// Runs an ensemble of RISF simulations, one per random seed, and reports
// how the lagoon depth and overflow risk spread across them.
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
	"runtime"

	"github.com/blgolden/RISFModel/RISF/climate"
	"github.com/blgolden/RISFModel/RISF/ensemble"
	"github.com/blgolden/RISFModel/RISF/evap"
	"github.com/blgolden/RISFModel/RISF/logger"
	"github.com/blgolden/RISFModel/RISF/param"
	"github.com/blgolden/RISFModel/RISF/waterBalance"

	"github.com/hjson/hjson-go"
)

var version string = "beta0.1.0"

var paramFile *string
var climateFile *string
var outputFile *string
var numberSpawned int // Number of simulations in the ensemble
var workers int

var cfg param.Config
var days []waterBalance.Day

// Parse the arg list looking for the input files
func parseArgs() {

	paramFile = flag.String("param", "", "The RISF parameter file (optional, defaults to the reference farm)")
	climateFile = flag.String("climate", "", "Daily weather station export, csv (required)")
	logger.OutputMode = flag.String("outputMode", "verbose", "'verbose'(default), 'table' or 'quiet'")
	logger.User = flag.String("user", "admin", "user=[Username]")
	ns := flag.Int("nSamples", 100, "Number of simulations (default 100)")
	nw := flag.Int("workers", runtime.NumCPU(), "Simulations run at once")
	logger.Seed = flag.Int64("seed", 1234, "Random number generator seed (int64)")
	isVersion := flag.Bool("version", false, "prints the version number of starter")
	outputFile = flag.String("outputFile", "", "Optional hjson file of the ensemble summary")

	flag.Parse()

	if *isVersion {
		fmt.Println("Version:", version)
		os.Exit(0)
	}

	numberSpawned = *ns
	workers = *nw

	if *climateFile == "" {
		if logger.Verbose() {

			// Print out a syntax message
			syntax := `Usage of ./starter:
  -climate string
    	Daily weather station export, csv (required)
  -param string
    	The RISF parameter file (optional)
  -outputMode string
    	'verbose', 'table' or 'quiet' (default "verbose")
  -seed int
    	Random number generator seed (int64) (default 1234)
  -user string
    	user=[Username] (default "admin")
  -nSamples int
	Number of simulations (default 100)
  -workers int
	Simulations run at once (default one per CPU)
  -outputFile string
	Optional hjson file of the ensemble summary
  -version
	Print the version number and exit`

			fmt.Printf("\n%s\n\n", syntax)
		}
		logger.LogWriterFatal("no climate file name provided")
	}
}

// Read the arguments, the parameters and the climate record.  Evaporation
// does not depend on the seed so it is computed once for every member.
func initialize() {

	parseArgs()

	var err error
	if *paramFile == "" {
		cfg = param.Default()
	} else if cfg, err = param.LoadFile(*paramFile); err != nil {
		logger.LogWriterFatal("Failed to load parameter file: " + err.Error())
	}

	in, err := climate.ReadFile(*climateFile, climate.ReadOptions{SkipRows: cfg.ClimateSkipRows})
	if err != nil {
		logger.LogWriterFatal("Failed to read climate file: " + err.Error())
	}
	for _, d := range in.Dropped {
		logger.LogWriterf("climate day dropped: %v", d)
	}

	series, err := evap.Compute(in.Records, workers)
	if err != nil {
		logger.LogWriterFatal(err.Error())
	}
	if days, err = waterBalance.Join(in.Records, series); err != nil {
		logger.LogWriterFatal(err.Error())
	}
}

// Write a table of the ensemble to the screen
func publishEnsemble(res *ensemble.Result) {

	fmt.Println("\t _____________________________________________________________________")
	fmt.Println("\t|   Month  | Mean depth | StdDev(depth) |  Fullest | P(risk) | P(event)|")
	fmt.Println("\t|__________|____________|_______________|__________|_________|_________|")

	// one line per month, taken on its last simulated day
	for i, d := range res.Days {
		if i+1 < len(res.Days) && res.Days[i+1].Date.Month() == d.Date.Month() {
			continue
		}
		fmt.Printf("\t| %8s | %10.2f | %13.2f | %8.2f | %7.3f | %7.3f |\n",
			d.Date.Format("2006-01"), d.MeanDepth, d.StdDepth, d.MinDepth, d.RiskProbability, d.EventProbability)
	}
	fmt.Println("\t|_____________________________________________________________________|")

	fmt.Printf("\n\tTotal irrigation (gal): mean %.0f  sd %.0f\n", res.IrrigationMean, res.IrrigationStd)
	for _, q := range res.IrrigationQuantiles {
		fmt.Printf("\t  %3.0f%%  %12.0f\n", q.P*100, q.Value)
	}
	fmt.Printf("\t *Number of simulations: %d (%d failed)\n", len(res.Members), res.Failed)
	fmt.Printf("\t *Time: %v using %d workers\n\n", res.Elapsed, workers)
}

// The daily ensemble statistics as hjson
func dumpEnsemble(res *ensemble.Result) error {
	var daily []interface{}
	for _, d := range res.Days {
		daily = append(daily, map[string]interface{}{
			"date":             d.Date.Format("2006-01-02"),
			"meanDepth":        d.MeanDepth,
			"stdDepth":         d.StdDepth,
			"riskProbability":  d.RiskProbability,
			"eventProbability": d.EventProbability,
		})
	}
	var quantiles []interface{}
	for _, q := range res.IrrigationQuantiles {
		quantiles = append(quantiles, map[string]interface{}{"p": q.P, "gallons": q.Value})
	}

	b, err := hjson.Marshal(map[string]interface{}{
		"comment":        cfg.Comment,
		"seed":           float64(*logger.Seed),
		"nSamples":       float64(len(res.Members)),
		"failed":         float64(res.Failed),
		"irrigationMean": res.IrrigationMean,
		"irrigationStd":  res.IrrigationStd,
		"quantiles":      quantiles,
		"days":           daily,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(*outputFile, b, 0644)
}

func main() {

	verbose := "verbose"
	logger.OutputMode = &verbose

	initialize()

	res, err := ensemble.Run(cfg, days, ensemble.Options{
		Samples:  numberSpawned,
		Workers:  workers,
		Seed:     *logger.Seed,
		Progress: logger.Verbose(),
	})
	if err != nil {
		logger.LogWriterFatal(err.Error())
	}
	for _, m := range res.Members {
		if m.Err != nil {
			logger.LogWriter(m.Err.Error())
		}
	}

	if *logger.OutputMode == "table" || *logger.OutputMode == "verbose" {
		publishEnsemble(res)
	}

	if *outputFile != "" {
		if err := dumpEnsemble(res); err != nil {
			logger.LogWriterFatal("Cannot write outputFile: " + err.Error())
		}
	}
}
