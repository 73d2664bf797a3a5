package sensor

import "errors"

// Fake returns scripted samples in order; once exhausted it keeps returning
// the last one.
type Fake struct {
	Samples []Sample
	Err     error
	index   int
}

// Sample is one scripted reading.
type Sample struct {
	TempC float64
	RH    float64
}

func NewFake(samples ...Sample) *Fake {
	return &Fake{Samples: samples}
}

func (f *Fake) Read() (float64, float64, error) {
	if f.Err != nil {
		return 0, 0, f.Err
	}
	if len(f.Samples) == 0 {
		return 0, 0, errors.New("no samples configured")
	}
	s := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return s.TempC, s.RH, nil
}
