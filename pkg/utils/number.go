package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// SafeDivide retorna 0 quando o divisor é zero ou o resultado não é finito
func SafeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}

	result := numerator / denominator
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0
	}

	return result
}

// PercentChange retorna a variação percentual de previous para current.
// O segundo retorno é falso quando previous é zero e a variação não é definida.
func PercentChange(current, previous float64) (float64, bool) {
	if previous == 0 {
		return 0, false
	}

	return (current - previous) / previous * 100, true
}
