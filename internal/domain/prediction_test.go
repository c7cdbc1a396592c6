package domain

import (
	"errors"
	"testing"
)

func TestPredictionValidate(t *testing.T) {
	full := Prediction{
		CardName:  "Звезда",
		Horoscope: "День принесёт ясность.",
		Finance:   "Вложения окупятся.",
		Relations: "Откройся близким.",
		Advice:    "Смотри на звёзды.",
	}
	if err := full.Validate(); err != nil {
		t.Errorf("Validate() on full prediction = %v, want nil", err)
	}

	fields := []func(p *Prediction){
		func(p *Prediction) { p.CardName = "" },
		func(p *Prediction) { p.Horoscope = "" },
		func(p *Prediction) { p.Finance = "" },
		func(p *Prediction) { p.Relations = "" },
		func(p *Prediction) { p.Advice = "" },
	}
	for i, clear := range fields {
		p := full
		clear(&p)
		err := p.Validate()
		if err == nil {
			t.Errorf("Validate() with cleared field %d = nil, want error", i)
			continue
		}
		if !errors.Is(err, ErrMissingField) {
			t.Errorf("Validate() with cleared field %d = %v, want ErrMissingField", i, err)
		}
	}
}

func TestFallbackPrediction_Complete(t *testing.T) {
	p := FallbackPrediction("The Tower")

	if p.CardName != "The Tower" {
		t.Errorf("fallback CardName = %q, want the drawn card", p.CardName)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("fallback prediction must be complete, got %v", err)
	}
}
