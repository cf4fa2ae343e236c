// evap project penman.go
//
// Open water evaporation from daily climate by the Penman combination equation
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
package evap

import "math"

// Saturation vapour pressure curve (Tetens/Magnus form)
const (
	magnusA = 4098.
	magnusB = 0.6108 // kPa
	magnusC = 17.27
	magnusD = 237.3 // C
)

// Net radiation from measured solar radiation
const (
	radiationSlope     = 0.65
	radiationIntercept = -0.85
)

// Logarithmic wind profile
const (
	windProfileA = 4.87
	windProfileB = 67.8
	windProfileC = 5.42
)

const (
	ReferenceHeight = 10.0 // m

	gasConstantAir = 287.5    // J/(kg K)
	pressure       = 101325.0 // Pa
	latentHeat     = 2450000.0
	waterDensity   = 997.0 // kg/m3
	roughness      = 0.00002
	vonKarman      = 0.4
	psychrometric  = 67.4
	molecularRatio = 0.622
	rateScale      = 8.64e+7 // m/s to mm/day
)

func magnus(t float64) float64 {
	return magnusB * math.Exp(magnusC*t/(t+magnusD))
}

// Slope of the saturation vapour pressure curve at avgTempC (Pa/C)
func Delta(avgTempC float64) float64 {
	return 1000 * magnusA * magnus(avgTempC) / math.Pow(avgTempC+magnusD, 2)
}

// Actual vapour pressure (Pa).  The max temperature pairs with the min humidity.
func ActualVaporPressure(minTempC, maxTempC, maxRH, minRH float64) float64 {
	return 1000 * (magnus(maxTempC)*minRH/100 + magnus(minTempC)*maxRH/100) / 2
}

// Saturation vapour pressure (Pa)
func SaturationVaporPressure(minTempC, maxTempC float64) float64 {
	return 1000 * (magnus(maxTempC) + magnus(minTempC)) / 2
}

func NetRadiation(avgSolarRad float64) float64 {
	return radiationSlope*avgSolarRad + radiationIntercept
}

// Rescales the station's average wind speed through the log wind profile
func WindSpeedAtReferenceHeight(avgWindSpeed float64) float64 {
	return avgWindSpeed * windProfileA / math.Log(windProfileB*ReferenceHeight-windProfileC)
}

// Ideal gas air density (kg/m3)
func AirDensity(avgTempC float64) float64 {
	return pressure / (gasConstantAir * (avgTempC + 273))
}

// Daily evaporation rate (mm/day)
func EvaporationRate(delta, es, ea, airDensity, netRadiation, windSpeed float64) float64 {
	radiative := (netRadiation * delta) / (latentHeat * waterDensity)
	aerodynamic := (molecularRatio * vonKarman * vonKarman * airDensity * windSpeed * psychrometric) /
		(pressure * waterDensity * math.Pow(math.Log(ReferenceHeight/roughness), 2)) * (es - ea)
	return rateScale * (1 / (delta + psychrometric)) * (radiative + aerodynamic)
}
