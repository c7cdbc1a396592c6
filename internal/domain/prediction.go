package domain

import "fmt"

// Prediction текстовая часть расклада, которую возвращает генеративная модель
type Prediction struct {
	CardName  string `json:"cardName"`
	Horoscope string `json:"horoscope"`
	Finance   string `json:"finance"`
	Relations string `json:"relations"`
	Advice    string `json:"advice"`
}

// Validate проверяет, что модель заполнила все обязательные поля
func (p *Prediction) Validate() error {
	switch {
	case p.CardName == "":
		return fmt.Errorf("prediction: %w: cardName", ErrMissingField)
	case p.Horoscope == "":
		return fmt.Errorf("prediction: %w: horoscope", ErrMissingField)
	case p.Finance == "":
		return fmt.Errorf("prediction: %w: finance", ErrMissingField)
	case p.Relations == "":
		return fmt.Errorf("prediction: %w: relations", ErrMissingField)
	case p.Advice == "":
		return fmt.Errorf("prediction: %w: advice", ErrMissingField)
	}
	return nil
}

// FallbackPrediction статичная заглушка на случай отказа текстовой модели.
// Имя карты берётся из выпавшей карты, тексты выглядят как обычное предсказание.
func FallbackPrediction(card Card) *Prediction {
	return &Prediction{
		CardName:  card.String(),
		Horoscope: "Туман скрывает будущее. Прислушайся к тишине.",
		Finance:   "Береги то, что имеешь.",
		Relations: "Истина в глазах смотрящего.",
		Advice:    "Иди вперед, не оглядываясь.",
	}
}
