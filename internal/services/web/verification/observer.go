package verification

// Observer receives flow outcomes, typically for metrics.
type Observer interface {
	VerificationFinished(kind Kind, result Result)
	AcceptFinished(ok bool)
}

type nopObserver struct{}

func (nopObserver) VerificationFinished(Kind, Result) {}
func (nopObserver) AcceptFinished(bool)               {}
