package geometry

import "math"

func abs(x float64) float64   { return math.Abs(x) }
func cosf(x float64) float64  { return math.Cos(x) }
func sinf(x float64) float64  { return math.Sin(x) }
func sqrtf(x float64) float64 { return math.Sqrt(x) }
