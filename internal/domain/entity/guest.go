package entity

// Guest представляет запись гостя в RSVP-таблице.
// Порядок полей соответствует порядку колонок в книге.
type Guest struct {
	AccessCode          string `json:"accessCode"`
	MaxGuests           string `json:"maxGuests"`
	PartyName           string `json:"partyName"`
	DietaryRestrictions string `json:"dietaryRestrictions"`
	HotelAccommodations string `json:"hotelAccommodations"`
	Questions           string `json:"questions"`
	RawNames            string `json:"rawNames"`
}

// GuestFieldNames возвращает имена полей в порядке колонок таблицы
func GuestFieldNames() []string {
	return []string{
		"accessCode",
		"maxGuests",
		"partyName",
		"dietaryRestrictions",
		"hotelAccommodations",
		"questions",
		"rawNames",
	}
}

// ToMap преобразует запись гостя в map по именам колонок
func (g *Guest) ToMap() map[string]string {
	return map[string]string{
		"accessCode":          g.AccessCode,
		"maxGuests":           g.MaxGuests,
		"partyName":           g.PartyName,
		"dietaryRestrictions": g.DietaryRestrictions,
		"hotelAccommodations": g.HotelAccommodations,
		"questions":           g.Questions,
		"rawNames":            g.RawNames,
	}
}

// ApplyUpdates накладывает частичное обновление на запись.
// Неизвестные ключи игнорируются, accessCode не перезаписывается.
func (g *Guest) ApplyUpdates(updates map[string]string) {
	for key, value := range updates {
		switch key {
		case "maxGuests":
			g.MaxGuests = value
		case "partyName":
			g.PartyName = value
		case "dietaryRestrictions":
			g.DietaryRestrictions = value
		case "hotelAccommodations":
			g.HotelAccommodations = value
		case "questions":
			g.Questions = value
		case "rawNames":
			g.RawNames = value
		}
	}
}
