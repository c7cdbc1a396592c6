package gemini

import (
	"fmt"

	"github.com/ryabchinskiymike/taro-bot/internal/domain"
)

// imagePrompt шаблон промпта иллюстрации карты
func imagePrompt(card domain.Card) string {
	return fmt.Sprintf("Side profile of a majestic tarot card character representing %s. "+
		"Dark fantasy anime aesthetic, sharp features, ornate gold crown, deep obsidian and gold palette, "+
		"ethereal glowing eyes, intricate gold filigree frame, vertical layout, masterpiece, 8k resolution.", card)
}

// textPrompt шаблон промпта предсказания дня
func textPrompt(card domain.Card, userName string) string {
	return fmt.Sprintf(`Ты — Мистический Оракул. Твоя задача — дать глубокое предсказание на день на основе карты Таро: "%s".
Пользователя зовут "%s".
Контекст: Modern Dark Fantasy.
Язык: Русский.
Тон: Загадочный, мудрый, но поддерживающий.

Верни ответ ТОЛЬКО в формате JSON по следующей схеме:
{
  "cardName": "Название карты на русском",
  "horoscope": "Общее влияние дня (2-3 предложения)",
  "finance": "Совет по финансам (1 предложение)",
  "relations": "Совет по отношениям (1 предложение)",
  "advice": "Финальное мистическое напутствие"
}`, card, userName)
}

// predictionSchema схема структурированного ответа с пятью обязательными полями
func predictionSchema() *responseSchema {
	return &responseSchema{
		Type: "OBJECT",
		Properties: map[string]schemaProperty{
			"cardName":  {Type: "STRING"},
			"horoscope": {Type: "STRING"},
			"finance":   {Type: "STRING"},
			"relations": {Type: "STRING"},
			"advice":    {Type: "STRING"},
		},
		Required: []string{"cardName", "horoscope", "finance", "relations", "advice"},
	}
}
