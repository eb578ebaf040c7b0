package status_phraser

type Phraser interface {
	Phrase(code int) (string, bool)
}

type Function func(int) (string, bool)

func (f Function) Phrase(code int) (string, bool) {
	return f(code)
}
