package pipeline

// StageError reports which stage of a run failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return e.Stage + " failed: " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}
