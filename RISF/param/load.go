// param project load.go
//
// Reads the hjson parameter file.  Tables are arrays of comma separated
// strings, e.g.
//
//	cropWindows: [
//	  "03-01, 1, 09-30, 3.0, bermuda, 6.0, 46.0"
//	]
//
// Keys left out keep their Default() values.
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
package param

import (
	"fmt"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	hjson "github.com/hjson/hjson-go"

	"github.com/blgolden/RISFModel/RISF/animal"
	"github.com/blgolden/RISFModel/RISF/climate"
	"github.com/blgolden/RISFModel/RISF/irrigation"
	"github.com/blgolden/RISFModel/RISF/lagoon"
)

// Read in the parameter hjson file and build the Config
func LoadFile(name string) (Config, error) {
	hjsonFile, err := os.Open(name)
	if err != nil {
		return Config{}, err
	}
	defer hjsonFile.Close()

	byteValue, err := ioutil.ReadAll(hjsonFile)
	if err != nil {
		return Config{}, err
	}

	cfg, err := Parse(byteValue)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", name, err)
	}
	return cfg, nil
}

func Parse(b []byte) (Config, error) {
	// setup the map of the array of json name:value pairs
	var m map[string]interface{}
	if err := hjson.Unmarshal(b, &m); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal hjson: %w", err)
	}
	return FromMap(m)
}

func FromMap(m map[string]interface{}) (Config, error) {
	cfg := Default()
	p := reader{m: m}

	if c, ok := m["comment"].(string); ok {
		cfg.Comment = c
	}

	p.number("initialDepth", &cfg.InitialDepth)
	p.number("dRisk", &cfg.DRisk)
	p.number("dStop", &cfg.DStop)
	p.number("mmToInch", &cfg.MmToInch)
	p.integer("irrigationInterval", &cfg.IrrigationInterval)
	p.integer("climateSkipRows", &cfg.ClimateSkipRows)

	p.number("minVolPerAcre", &cfg.Policy.MinVolPerAcre)
	p.number("maxVolPerAcre", &cfg.Policy.MaxVolPerAcre)
	p.number("gallonsPerDemandUnit", &cfg.Policy.GallonsPerUnit)

	p.integer("animalCount", &cfg.Herd.Count)
	if t, ok := m["animalType"]; ok {
		s, ok := t.(string)
		if !ok {
			p.fail("'animalType' must be a string")
		}
		cfg.Herd.Type = animal.Type(strings.TrimSpace(s))
	}

	for _, row := range p.rows("manureRates", 2) {
		r, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			p.fail("manureRates: bad rate %q for %s", row[1], row[0])
			continue
		}
		// a row naming a known type in another case replaces that entry
		t, ok := cfg.ManureRates.Lookup(row[0])
		if !ok {
			t = animal.Type(row[0])
		}
		cfg.ManureRates[t] = r
	}

	if _, ok := m["cropWindows"]; ok {
		cfg.CropWindows = nil
		for _, row := range p.rows("cropWindows", 7) {
			w, err := cropWindow(row)
			if err != nil {
				p.fail("cropWindows: %v", err)
				continue
			}
			cfg.CropWindows = append(cfg.CropWindows, w)
		}
		sortWindows(cfg.CropWindows)
	}

	if _, ok := m["stageStorage"]; ok {
		var survey []lagoon.SurveyPoint
		for _, row := range p.rows("stageStorage", 3) {
			v, err := floats(row)
			if err != nil {
				p.fail("stageStorage: %v", err)
				continue
			}
			survey = append(survey, lagoon.SurveyPoint{Depth: v[0], Volume: v[1], Area: v[2]})
		}
		if p.err == nil {
			g, err := lagoon.FitGeometry(survey)
			if err != nil {
				p.fail("stageStorage: %v", err)
			}
			cfg.Geometry = g
		}
	}

	// explicit coefficients win over a fitted survey
	p.poly("surfaceAreaFit", &cfg.Geometry.SurfaceAreaFit)
	p.poly("volumeFit", &cfg.Geometry.VolumeFit)
	p.poly("depthFit", &cfg.Geometry.DepthFit)

	if p.err != nil {
		return Config{}, p.err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// start, field, end, rooting depth, crop, application rate, acreage
func cropWindow(row []string) (irrigation.CropWindow, error) {
	var w irrigation.CropWindow
	var err error

	if w.Start, err = climate.ParseMonthDay(row[0]); err != nil {
		return w, err
	}
	if w.FieldID, err = strconv.Atoi(row[1]); err != nil {
		return w, fmt.Errorf("bad field id %q", row[1])
	}
	if w.End, err = climate.ParseMonthDay(row[2]); err != nil {
		return w, err
	}
	w.Crop = row[4]

	v, err := floats([]string{row[3], row[5], row[6]})
	if err != nil {
		return w, fmt.Errorf("field %d: %v", w.FieldID, err)
	}
	w.RootingDepth, w.ApplicationRate, w.Acreage = v[0], v[1], v[2]
	return w, nil
}

func floats(s []string) ([]float64, error) {
	v := make([]float64, len(s))
	for i := range s {
		f, err := strconv.ParseFloat(s[i], 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", s[i])
		}
		v[i] = f
	}
	return v, nil
}

// Pulls typed values out of the hjson map, keeping the first error
type reader struct {
	m   map[string]interface{}
	err error
}

func (p *reader) fail(format string, a ...interface{}) {
	if p.err == nil {
		p.err = fmt.Errorf(format, a...)
	}
}

func (p *reader) number(key string, dst *float64) {
	v, ok := p.m[key]
	if !ok {
		return
	}
	switch x := v.(type) {
	case float64:
		*dst = x
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			p.fail("'%s' is not a number: %q", key, x)
			return
		}
		*dst = f
	default:
		p.fail("'%s' is not a number", key)
	}
}

func (p *reader) integer(key string, dst *int) {
	var f float64
	if _, ok := p.m[key]; !ok {
		return
	}
	p.number(key, &f)
	if f != float64(int(f)) {
		p.fail("'%s' must be a whole number, have %g", key, f)
		return
	}
	*dst = int(f)
}

func (p *reader) poly(key string, dst *lagoon.Polynomial) {
	v, ok := p.m[key]
	if !ok {
		return
	}
	array, ok := v.([]interface{})
	if !ok || len(array) == 0 {
		p.fail("'%s' must be a list of coefficients", key)
		return
	}
	var c lagoon.Polynomial
	for i := range array {
		f, ok := array[i].(float64)
		if !ok {
			p.fail("'%s' coefficient %d is not a number", key, i)
			return
		}
		c = append(c, f)
	}
	*dst = c
}

// Each row of a table split on commas and trimmed
func (p *reader) rows(key string, fields int) [][]string {
	v, ok := p.m[key]
	if !ok {
		return nil
	}
	array, ok := v.([]interface{})
	if !ok {
		p.fail("'%s' must be a list of comma separated strings", key)
		return nil
	}
	var out [][]string
	for i := range array {
		s, ok := array[i].(string)
		if !ok {
			p.fail("'%s' row %d is not a string", key, i+1)
			continue
		}
		c := strings.Split(s, ",")
		if len(c) != fields {
			p.fail("'%s' row %d has %d fields, want %d: %q", key, i+1, len(c), fields, s)
			continue
		}
		for j := range c {
			c[j] = strings.TrimSpace(c[j])
		}
		out = append(out, c)
	}
	return out
}
