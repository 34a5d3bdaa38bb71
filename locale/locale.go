// Package locale holds the English and Russian texts shown by the client.
package locale

import "fmt"

// Language is a supported interface language
type Language string

// Supported languages
const (
	English Language = "en"
	Russian Language = "ru"
)

// Parse validates a language code
func Parse(code string) (Language, error) {
	switch Language(code) {
	case English, Russian:
		return Language(code), nil
	default:
		return "", fmt.Errorf("unsupported language: %q (must be 'en' or 'ru')", code)
	}
}

// Toggle returns the other language
func (l Language) Toggle() Language {
	if l == English {
		return Russian
	}
	return English
}

// Label returns the upper-case code shown on the language switch
func (l Language) Label() string {
	if l == English {
		return "EN"
	}
	return "RU"
}

// String returns the language code
func (l Language) String() string {
	return string(l)
}

// Text keys
const (
	KeySearch               = "search"
	KeyCollection           = "collection"
	KeyRecommendations      = "recommendations"
	KeyAddToCollection      = "addToCollection"
	KeyRemoveFromCollection = "removeFromCollection"
	KeySearchPlaceholder    = "searchPlaceholder"
	KeyLoading              = "loading"
	KeyNoResults            = "noResults"
	KeyAdded                = "added"
	KeyRemoved              = "removed"
	KeyAlreadyAdded         = "alreadyAdded"
	KeyNoOverview           = "noOverview"
	KeyRequestFailed        = "requestFailed"
	KeyNotInCollection      = "notInCollection"
	KeyUnknownMovie         = "unknownMovie"
	KeyUpdated              = "updated"
	KeyWatched              = "watched"
	KeyRating               = "rating"
	KeyThemeChanged         = "themeChanged"
	KeyLanguageChanged      = "languageChanged"
)

var texts = map[Language]map[string]string{
	English: {
		KeySearch:               "Search",
		KeyCollection:           "My Collection",
		KeyRecommendations:      "Recommendations",
		KeyAddToCollection:      "Add to Collection",
		KeyRemoveFromCollection: "Remove",
		KeySearchPlaceholder:    "Search movies...",
		KeyLoading:              "Loading...",
		KeyNoResults:            "No movies found",
		KeyAdded:                "Added to collection!",
		KeyRemoved:              "Removed from collection!",
		KeyAlreadyAdded:         "Already in collection",
		KeyNoOverview:           "No description",
		KeyRequestFailed:        "Request failed",
		KeyNotInCollection:      "Not in collection",
		KeyUnknownMovie:         "Movie not found in the current lists",
		KeyUpdated:              "Collection entry updated!",
		KeyWatched:              "Watched",
		KeyRating:               "Rating",
		KeyThemeChanged:         "Theme switched",
		KeyLanguageChanged:      "Language switched",
	},
	Russian: {
		KeySearch:               "Поиск",
		KeyCollection:           "Моя коллекция",
		KeyRecommendations:      "Рекомендации",
		KeyAddToCollection:      "Добавить в коллекцию",
		KeyRemoveFromCollection: "Удалить",
		KeySearchPlaceholder:    "Поиск фильмов...",
		KeyLoading:              "Загрузка...",
		KeyNoResults:            "Ничего не найдено",
		KeyAdded:                "Добавлено в коллекцию!",
		KeyRemoved:              "Удалено из коллекции!",
		KeyAlreadyAdded:         "Уже в коллекции",
		KeyNoOverview:           "Нет описания",
		KeyRequestFailed:        "Ошибка запроса",
		KeyNotInCollection:      "Нет в коллекции",
		KeyUnknownMovie:         "Фильм не найден в текущих списках",
		KeyUpdated:              "Запись обновлена!",
		KeyWatched:              "Просмотрено",
		KeyRating:               "Оценка",
		KeyThemeChanged:         "Тема переключена",
		KeyLanguageChanged:      "Язык переключен",
	},
}

// Text returns the text for key in lang, falling back to English and then to
// the key itself
func Text(lang Language, key string) string {
	if t, ok := texts[lang][key]; ok {
		return t
	}
	if t, ok := texts[English][key]; ok {
		return t
	}
	return key
}

// Keys returns every known text key
func Keys() []string {
	keys := make([]string, 0, len(texts[English]))
	for k := range texts[English] {
		keys = append(keys, k)
	}
	return keys
}
