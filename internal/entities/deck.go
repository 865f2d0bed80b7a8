package entities

import (
	"time"
)

// Deck is the normalized archetype deck every provider converges on.
type Deck struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"index;size:256" json:"name"`
	Class      string    `gorm:"index;size:32" json:"class"`
	Note       string    `gorm:"type:text" json:"note,omitempty"`
	URL        string    `gorm:"size:2048" json:"url,omitempty"`
	ExternalID string    `gorm:"index;size:36" json:"external_id,omitempty"`
	Archived   bool      `gorm:"default:false" json:"archived"`
	LastEdited time.Time `json:"last_edited"`
	Cards      []Card    `gorm:"foreignKey:DeckID" json:"cards"`
	Tags       []Tag     `gorm:"many2many:deck_tags;" json:"tags,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Card is one entry of a deck list: a stable card id and how many copies.
type Card struct {
	ID     uint `gorm:"primaryKey" json:"-"`
	DeckID uint `gorm:"index" json:"-"`
	CardID int  `gorm:"index" json:"card_id"`
	Count  int  `json:"count"`
}

type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100" json:"name"`
	Decks     []Deck    `gorm:"many2many:deck_tags;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (Deck) TableName() string {
	return "decks"
}

func (Card) TableName() string {
	return "deck_cards"
}

func (Tag) TableName() string {
	return "tags"
}

// HasTag reports whether the deck carries a tag with the given name.
func (d *Deck) HasTag(name string) bool {
	for _, t := range d.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

// CardCount returns the total number of cards, counting copies.
func (d *Deck) CardCount() int {
	total := 0
	for _, c := range d.Cards {
		total += c.Count
	}
	return total
}
