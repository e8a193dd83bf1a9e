package clock

import "time"

// Clock abstrai o "agora" para que os casos de uso não dependam do relógio
// da máquina (testes simulam qualquer data corrente).
type Clock interface {
	Now() time.Time
}

type Real struct{}

func (Real) Now() time.Time {
	return time.Now()
}

// Fixed é um relógio congelado para testes.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T
}
