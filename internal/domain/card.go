package domain

// Card идентификатор карты Таро из фиксированной колоды
type Card string

// tarotCards фиксированная колода из 39 карт (22 старших аркана + 17 младших)
var tarotCards = []Card{
	"The Fool", "The Magician", "The High Priestess", "The Empress", "The Emperor",
	"The Hierophant", "The Lovers", "The Chariot", "Strength", "The Hermit",
	"Wheel of Fortune", "Justice", "The Hanged Man", "Death", "Temperance",
	"The Devil", "The Tower", "The Star", "The Moon", "The Sun", "Judgement", "The World",
	"Ace of Cups", "Two of Cups", "Three of Cups", "Queen of Cups", "King of Cups",
	"Ace of Swords", "Ten of Swords", "Queen of Swords", "King of Swords",
	"Ace of Pentacles", "Ten of Pentacles", "Queen of Pentacles", "King of Pentacles",
	"Ace of Wands", "Eight of Wands", "Queen of Wands", "King of Wands",
}

// AllCards возвращает копию колоды
func AllCards() []Card {
	cards := make([]Card, len(tarotCards))
	copy(cards, tarotCards)
	return cards
}

// DeckSize возвращает размер колоды
func DeckSize() int {
	return len(tarotCards)
}

// CardAt возвращает карту по индексу в колоде (индекс нормализуется)
func CardAt(i int) Card {
	if i < 0 {
		i = -i
	}
	return tarotCards[i%len(tarotCards)]
}

// String возвращает строковое представление карты
func (c Card) String() string {
	return string(c)
}

// IsValid проверяет, что карта принадлежит колоде
func (c Card) IsValid() bool {
	for _, card := range tarotCards {
		if card == c {
			return true
		}
	}
	return false
}
