package definitions

// OfficeSupervisor owns the lifecycle of the fixed-size pool of office
// worker processes and exposes conversion to the first available
// worker.
type OfficeSupervisor interface {
	// Convert routes input bytes to the first available office worker and
	// returns the produced PDF bytes. Returns an overload error if no
	// worker is currently available.
	Convert(input []byte) ([]byte, error)
	// Healthy reports whether at least one office worker is currently
	// available to take a conversion.
	Healthy() bool
	// Shutdown stops every worker and releases their resources.
	Shutdown()
}
