package trace

// InfectionRecord captures a single infection.
type InfectionRecord struct {
	Day        int
	Individual int32
	Infector   int32 // -1 for seed infections
	Seed       bool
}
