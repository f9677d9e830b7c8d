package validation

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	MinCategoryLength    = 2
	MaxCategoryLength    = 100
	MinDescriptionLength = 10
	MaxDescriptionLength = 5000
	MaxLocationLength    = 200
	MaxTagLength         = 50
	MaxTagsCount         = 20
	MaxQuantity          = 1000000
	MinNameLength        = 2
	MaxNameLength        = 100
	MaxBioLength         = 1000
	MaxContactInfoLength = 500
	MinNeedsLength       = 3
	MaxNeedsLength       = 2000
	MaxCommentLength     = 2000
	MaxMediaDescription  = 500
	MaxMediaURLLength    = 500
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidateCategory проверяет категорию ресурса.
func ValidateCategory(category string) error {
	if err := ValidateNonEmpty("категория", category); err != nil {
		return err
	}
	return ValidateLength("категория", category, MinCategoryLength, MaxCategoryLength)
}

// ValidateDescription проверяет описание ресурса.
func ValidateDescription(description string) error {
	if err := ValidateNonEmpty("описание", description); err != nil {
		return err
	}
	return ValidateLength("описание", description, MinDescriptionLength, MaxDescriptionLength)
}

// ValidateQuantity проверяет количество единиц ресурса.
func ValidateQuantity(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("количество должно быть положительным")
	}
	if quantity > MaxQuantity {
		return fmt.Errorf("количество не может превышать %d", MaxQuantity)
	}
	return nil
}

// ValidateLocation проверяет локацию ресурса.
func ValidateLocation(location string) error {
	if err := ValidateNonEmpty("локация", location); err != nil {
		return err
	}
	return ValidateLength("локация", location, 0, MaxLocationLength)
}

// ValidateCoordinates проверяет пару координат: либо обе заданы, либо ни одной.
func ValidateCoordinates(latitude, longitude *float64) error {
	if (latitude == nil) != (longitude == nil) {
		return fmt.Errorf("широта и долгота должны быть заданы вместе")
	}
	if latitude == nil {
		return nil
	}
	if *latitude < -90 || *latitude > 90 {
		return fmt.Errorf("широта должна быть в диапазоне от -90 до 90")
	}
	if *longitude < -180 || *longitude > 180 {
		return fmt.Errorf("долгота должна быть в диапазоне от -180 до 180")
	}
	return nil
}

// ValidateTags проверяет набор тегов ресурса.
func ValidateTags(tags []string) error {
	if len(tags) > MaxTagsCount {
		return fmt.Errorf("тегов не может быть более %d", MaxTagsCount)
	}

	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			return fmt.Errorf("тег не может быть пустым")
		}
		if utf8.RuneCountInString(trimmed) > MaxTagLength {
			return fmt.Errorf("тег должен быть не более %d символов", MaxTagLength)
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("теги не должны повторяться")
		}
		seen[key] = struct{}{}
	}
	return nil
}

// NormalizeTags приводит теги к единому виду: обрезает пробелы и нижний регистр.
func NormalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		normalized = append(normalized, strings.ToLower(strings.TrimSpace(tag)))
	}
	return normalized
}

// ValidateRating проверяет оценку отзыва.
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("рейтинг должен быть от 1 до 5")
	}
	return nil
}

// ValidateComment проверяет комментарий отзыва.
func ValidateComment(comment *string) error {
	if comment == nil {
		return nil
	}
	return ValidateLength("комментарий", *comment, 0, MaxCommentLength)
}

// ValidateName проверяет имя в профиле.
func ValidateName(name string) error {
	if err := ValidateNonEmpty("имя", name); err != nil {
		return err
	}
	return ValidateLength("имя", name, MinNameLength, MaxNameLength)
}

// ValidateBio проверяет описание профиля.
func ValidateBio(bio *string) error {
	if bio == nil {
		return nil
	}
	return ValidateLength("о себе", *bio, 0, MaxBioLength)
}

// ValidateContactInfo проверяет контактную информацию.
func ValidateContactInfo(contactInfo *string) error {
	if contactInfo == nil {
		return nil
	}
	return ValidateLength("контактная информация", *contactInfo, 0, MaxContactInfoLength)
}

// ValidateNeedsText проверяет описание потребностей для AI подбора.
func ValidateNeedsText(needs string) error {
	if err := ValidateNonEmpty("описание потребностей", needs); err != nil {
		return err
	}
	return ValidateLength("описание потребностей", needs, MinNeedsLength, MaxNeedsLength)
}

// ValidateMediaURL проверяет ссылку на медиа.
func ValidateMediaURL(rawURL string) error {
	if err := ValidateNonEmpty("ссылка на медиа", rawURL); err != nil {
		return err
	}
	if utf8.RuneCountInString(rawURL) > MaxMediaURLLength {
		return fmt.Errorf("ссылка на медиа должна быть не более %d символов", MaxMediaURLLength)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("некорректная ссылка на медиа")
	}
	// Пустая схема допустима: загруженные файлы отдаются по относительному пути.
	if parsed.Scheme != "" && parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("ссылка на медиа должна использовать http или https")
	}
	return nil
}

// ValidateMediaDescription проверяет подпись элемента медиа.
func ValidateMediaDescription(description *string) error {
	if description == nil {
		return nil
	}
	return ValidateLength("подпись медиа", *description, 0, MaxMediaDescription)
}
