package library

// SeedBook is one catalog entry loaded by NewSeeded.
type SeedBook struct {
	Title  string
	Author string
	Year   int
	Genre  string
	ISBN   string
}

// SeedUser is one patron loaded by NewSeeded.
type SeedUser struct {
	Name  string
	Email string
	Phone string
}

// Seed is the fixed starting state of a demo library.
type Seed struct {
	Books []SeedBook
	Users []SeedUser
}

// DefaultSeed returns the 8 books and 3 users every demo run starts with.
func DefaultSeed() Seed {
	return Seed{
		Books: []SeedBook{
			{"Война и мир", "Лев Толстой", 1869, "Роман", "978-5-389-00000-1"},
			{"Преступление и наказание", "Фёдор Достоевский", 1866, "Роман", "978-5-389-00000-2"},
			{"Мастер и Маргарита", "Михаил Булгаков", 1967, "Роман", "978-5-389-00000-3"},
			{"1984", "Джордж Оруэлл", 1949, "Антиутопия", "978-5-389-00000-4"},
			{"Гарри Поттер и философский камень", "Дж. К. Роулинг", 1997, "Фэнтези", "978-5-389-00000-5"},
			{"Маленький принц", "Антуан де Сент-Экзюпери", 1943, "Притча", "978-5-389-00000-6"},
			{"Три товарища", "Эрих Мария Ремарк", 1936, "Роман", "978-5-389-00000-7"},
			{"Атлант расправил плечи", "Айн Рэнд", 1957, "Философский роман", "978-5-389-00000-8"},
		},
		Users: []SeedUser{
			{"Иван Петров", "ivan@mail.ru", "+7(999)123-45-67"},
			{"Мария Сидорова", "maria@mail.ru", "+7(999)765-43-21"},
			{"Алексей Иванов", "alex@mail.ru", "+7(999)111-22-33"},
		},
	}
}

// NewSeeded creates a library and loads seed into it in order, so ids follow
// the seed's ordering starting at 1.
func NewSeeded(name string, seed Seed, opts ...Option) (*Library, error) {
	l, err := New(name, opts...)
	if err != nil {
		return nil, err
	}
	for _, b := range seed.Books {
		l.AddBook(b.Title, b.Author, b.Year, b.Genre, b.ISBN)
	}
	for _, u := range seed.Users {
		l.RegisterUser(u.Name, u.Email, u.Phone)
	}
	return l, nil
}
