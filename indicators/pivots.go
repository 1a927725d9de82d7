package indicators

// PivotLevels holds classic floor-trader pivot levels derived from the
// previous period's high, low, and close.
type PivotLevels struct {
	PP float64
	R1 float64
	R2 float64
	R3 float64
	S1 float64
	S2 float64
	S3 float64
}

// PivotPoints calculates classic pivot levels:
//
//	PP = (H+L+C)/3
//	R1 = 2·PP − L     S1 = 2·PP − H
//	R2 = PP + (H−L)   S2 = PP − (H−L)
//	R3 = H + 2·(PP−L) S3 = L − 2·(H−PP)
func PivotPoints(prevHigh, prevLow, prevClose float64) PivotLevels {
	pp := (prevHigh + prevLow + prevClose) / 3

	return PivotLevels{
		PP: pp,
		R1: 2*pp - prevLow,
		R2: pp + (prevHigh - prevLow),
		R3: prevHigh + 2*(pp-prevLow),
		S1: 2*pp - prevHigh,
		S2: pp - (prevHigh - prevLow),
		S3: prevLow - 2*(prevHigh-pp),
	}
}

// Levels returns the pivot levels in a fixed order with their names,
// for callers that scan for the nearest level.
func (p PivotLevels) Levels() []NamedLevel {
	return []NamedLevel{
		{"PP", p.PP},
		{"R1", p.R1},
		{"R2", p.R2},
		{"R3", p.R3},
		{"S1", p.S1},
		{"S2", p.S2},
		{"S3", p.S3},
	}
}

// NamedLevel pairs a pivot level with its conventional name.
type NamedLevel struct {
	Name  string
	Price float64
}
