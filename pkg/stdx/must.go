package stdx

// Must0 panics when err is not nil. It turns an error return into a
// programming-error check for call sites that cannot meaningfully fail,
// like hook registrations performed at startup.
func Must0(err error) {
	if err != nil {
		panic(err)
	}
}

// Must1 returns v when err is nil and panics otherwise. It is the
// one-value companion of Must0, for building values in package-level
// variable declarations where the only sane reaction to failure is to
// stop.
func Must1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
