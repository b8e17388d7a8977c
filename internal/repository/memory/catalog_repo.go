package memory

import "github.com/yourusername/wedding-trivia/internal/domain/entity"

// CatalogRepo отдает встроенный каталог вопросов.
// Используется, когда книга с вопросами не настроена.
type CatalogRepo struct {
	questions []entity.Question
}

// NewCatalogRepo создает репозиторий со встроенным каталогом
func NewCatalogRepo() *CatalogRepo {
	return &CatalogRepo{questions: defaultQuestions()}
}

// NewCatalogRepoWithQuestions создает репозиторий с заданным каталогом.
// Удобно для тестов.
func NewCatalogRepoWithQuestions(questions []entity.Question) *CatalogRepo {
	return &CatalogRepo{questions: questions}
}

// LoadQuestions возвращает упорядоченный каталог
func (r *CatalogRepo) LoadQuestions() ([]entity.Question, error) {
	return r.questions, nil
}

// defaultQuestions — каталог по умолчанию для свадебной викторины
func defaultQuestions() []entity.Question {
	return []entity.Question{
		{
			Category:      "Culture Club - Vietnam",
			Text:          "What is the name of the traditional Vietnamese dress worn at weddings and formal events?",
			Options:       []string{"Kimono", "Ao Dai", "Hanbok", "Sari"},
			CorrectOption: 1,
			PointValue:    100,
		},
		{
			Category:      "Culture Club - India",
			Text:          "What spice is commonly used in Indian chai?",
			Options:       []string{"Cumin", "Paprika", "Cardamom", "Ginger"},
			CorrectOption: 2,
			PointValue:    100,
		},
		{
			Category:      "Culture Club - Canada",
			Text:          "What sweet treat is made from snow and maple syrup in Canada?",
			Options:       []string{"Beaver Tail", "Maple Taffy", "Sugar Pancake", "Frozen Syrup Pop"},
			CorrectOption: 1,
			PointValue:    100,
		},
		{
			Category:      "Culture Club - Geography",
			Text:          "Put these in order of population (most to least): India, Vietnam, Canada",
			Options:       []string{"India > Canada > Vietnam", "Vietnam > India > Canada", "India > Vietnam > Canada", "Canada > India > Vietnam"},
			CorrectOption: 2,
			PointValue:    150,
		},
		{
			Category:      "Wedding Whirlwind",
			Text:          "What flower is traditionally thrown at Indian weddings for blessings?",
			Options:       []string{"Lotus", "Jasmine", "Marigold", "Rose"},
			CorrectOption: 3,
			PointValue:    200,
		},
		{
			Category:      "Wedding Whirlwind",
			Text:          "Which of these fruits is commonly found in Vietnamese wedding baskets?",
			Options:       []string{"Apple", "Mango", "Blueberry", "Kiwi"},
			CorrectOption: 1,
			PointValue:    200,
		},
		{
			Category:      "Wedding Whirlwind",
			Text:          "In which language is \"I love you\" said as \"Anh yêu em\"?",
			Options:       []string{"Tagalog", "Thai", "Vietnamese", "Lao"},
			CorrectOption: 2,
			PointValue:    200,
		},
		{
			Category:      "Wedding Whirlwind",
			Text:          "Which Bollywood movie is famously about a big Indian wedding?",
			Options:       []string{"Lagaan", "Monsoon Wedding", "Slumdog Millionaire", "Chennai Express"},
			CorrectOption: 1,
			PointValue:    250,
		},
		{
			Category:      "Vietnamese Language",
			Text:          "How do you say \"Thank you\" in Vietnamese?",
			Options:       []string{"Xin chào", "Cảm ơn", "Tạm biệt", "Xin lỗi"},
			CorrectOption: 1,
			PointValue:    200,
		},
		{
			Category:      "Indian Traditions",
			Text:          "In traditional Indian weddings, what do couples walk around during the ceremony?",
			Options:       []string{"A tree", "Sacred fire", "Temple", "Altar"},
			CorrectOption: 1,
			PointValue:    200,
		},
	}
}
