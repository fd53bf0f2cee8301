package bubble

// scriptRNG replays fixed draws so tests can pin exact placement and color
// sequences. Once a script runs out it falls back to the given defaults.
type scriptRNG struct {
	floats []float64
	ints   []int

	floatDefault float64
	floatCalls   int
	intCalls     int
}

func (s *scriptRNG) Float64() float64 {
	s.floatCalls++
	if len(s.floats) == 0 {
		return s.floatDefault
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptRNG) Intn(n int) int {
	s.intCalls++
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}
