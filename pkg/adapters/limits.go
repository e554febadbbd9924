package adapters

// Limits caps how many rows each ranked view shows.
type Limits struct {
	States     int
	Cities     int
	BestWorst  int
	RFMLeaders int
}

func DefaultLimits() Limits {
	return Limits{
		States:     5,
		Cities:     10,
		BestWorst:  5,
		RFMLeaders: 5,
	}
}
