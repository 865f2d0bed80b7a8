package entities

import "strings"

// Class describes a Hearthstone player class and the identifiers each
// provider uses for it.
type Class struct {
	ID          int    // HSReplay player_class id
	Key         string // upper-case key used by HSReplay payloads
	Name        string // tag name stored on decks
	DisplayName string // human readable, may contain spaces
	HeroCardID  string
	HeroDbfID   int
}

var classes = []Class{
	{ID: 2, Key: "DRUID", Name: "Druid", DisplayName: "Druid", HeroCardID: "HERO_06", HeroDbfID: 274},
	{ID: 3, Key: "HUNTER", Name: "Hunter", DisplayName: "Hunter", HeroCardID: "HERO_05", HeroDbfID: 31},
	{ID: 4, Key: "MAGE", Name: "Mage", DisplayName: "Mage", HeroCardID: "HERO_08", HeroDbfID: 637},
	{ID: 5, Key: "PALADIN", Name: "Paladin", DisplayName: "Paladin", HeroCardID: "HERO_04", HeroDbfID: 671},
	{ID: 6, Key: "PRIEST", Name: "Priest", DisplayName: "Priest", HeroCardID: "HERO_09", HeroDbfID: 813},
	{ID: 7, Key: "ROGUE", Name: "Rogue", DisplayName: "Rogue", HeroCardID: "HERO_03", HeroDbfID: 930},
	{ID: 8, Key: "SHAMAN", Name: "Shaman", DisplayName: "Shaman", HeroCardID: "HERO_02", HeroDbfID: 1066},
	{ID: 9, Key: "WARLOCK", Name: "Warlock", DisplayName: "Warlock", HeroCardID: "HERO_07", HeroDbfID: 893},
	{ID: 10, Key: "WARRIOR", Name: "Warrior", DisplayName: "Warrior", HeroCardID: "HERO_01", HeroDbfID: 7},
	{ID: 14, Key: "DEMONHUNTER", Name: "DemonHunter", DisplayName: "Demon Hunter", HeroCardID: "HERO_10", HeroDbfID: 56550},
}

// Classes returns all known player classes.
func Classes() []Class {
	out := make([]Class, len(classes))
	copy(out, classes)
	return out
}

// ClassByID looks up a class by its HSReplay id.
func ClassByID(id int) (Class, bool) {
	for _, c := range classes {
		if c.ID == id {
			return c, true
		}
	}
	return Class{}, false
}

// ClassByKey looks up a class by its upper-case key, case-insensitively.
func ClassByKey(key string) (Class, bool) {
	key = strings.ToUpper(strings.TrimSpace(key))
	for _, c := range classes {
		if c.Key == key {
			return c, true
		}
	}
	return Class{}, false
}

// ClassByHero looks up a class by hero card id, matching on the base hero
// prefix so skins like HERO_08a resolve as well.
func ClassByHero(cardID string) (Class, bool) {
	cardID = strings.ToUpper(strings.TrimSpace(cardID))
	for _, c := range classes {
		if cardID == c.HeroCardID || (strings.HasPrefix(cardID, c.HeroCardID) && !isDigit(cardID[len(c.HeroCardID)])) {
			return c, true
		}
	}
	return Class{}, false
}

// ClassByHeroDbfID looks up a class by the dbf id of its default hero.
func ClassByHeroDbfID(dbfID int) (Class, bool) {
	for _, c := range classes {
		if c.HeroDbfID == dbfID {
			return c, true
		}
	}
	return Class{}, false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
