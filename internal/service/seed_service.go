package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ignatzorin/resource-sharing-backend/internal/models"
	"github.com/ignatzorin/resource-sharing-backend/internal/repository"
)

// SeedService генерирует фейковые данные для тестирования.
type SeedService struct {
	profileRepo  *repository.ProfileRepository
	resourceRepo *repository.ResourceRepository
	tokens       *TokenManager
	listingTTL   time.Duration
}

// NewSeedService создаёт новый сервис для генерации данных.
func NewSeedService(
	profileRepo *repository.ProfileRepository,
	resourceRepo *repository.ResourceRepository,
	tokens *TokenManager,
	listingTTL time.Duration,
) *SeedService {
	return &SeedService{
		profileRepo:  profileRepo,
		resourceRepo: resourceRepo,
		tokens:       tokens,
		listingTTL:   listingTTL,
	}
}

// SeededUser — сгенерированный участник с dev-токеном для ручного тестирования.
type SeededUser struct {
	Principal uuid.UUID `json:"principal"`
	Name      string    `json:"name"`
	Token     string    `json:"token"`
}

// SeedData генерирует фейковые профили и ресурсы.
func (s *SeedService) SeedData(ctx context.Context, numUsers int, numResources int) ([]SeededUser, error) {
	users, err := s.generateProfiles(ctx, numUsers)
	if err != nil {
		return nil, fmt.Errorf("seed service: failed to generate profiles: %w", err)
	}

	if err := s.generateResources(ctx, users, numResources); err != nil {
		return nil, fmt.Errorf("seed service: failed to generate resources: %w", err)
	}

	return users, nil
}

// generateProfiles создаёт фейковые профили участников.
func (s *SeedService) generateProfiles(ctx context.Context, count int) ([]SeededUser, error) {
	firstNames := []string{
		"Александр", "Дмитрий", "Максим", "Сергей", "Андрей", "Алексей", "Артём", "Илья",
		"Иван", "Михаил", "Никита", "Роман", "Егор", "Павел", "Владимир", "Константин",
		"Анна", "Мария", "Елена", "Ольга", "Татьяна", "Наталья", "Ирина", "Светлана",
		"Екатерина", "Юлия", "Анастасия", "Дарья", "Виктория", "Полина", "София", "Алиса",
	}
	lastNames := []string{
		"Иванов", "Петров", "Смирнов", "Козлов", "Соколов", "Попов", "Лебедев", "Новиков",
		"Морозов", "Волков", "Соловьёв", "Васильев", "Зайцев", "Павлов", "Семёнов", "Голубев",
		"Виноградов", "Богданов", "Воробьёв", "Фёдоров", "Михайлов", "Белов", "Тарасов", "Беляев",
	}

	bios := []string{
		"Делюсь вещами, которые больше не нужны. Лучше отдать соседям, чем выбросить.",
		"Люблю садоводство, часто остаются излишки урожая и рассады.",
		"Переезжаю, раздаю мебель и технику в хорошем состоянии.",
		"Волонтёр районного сообщества взаимопомощи, помогаю с координацией раздач.",
		"Мастерю по дереву, отдаю обрезки материалов и инструменты, которыми не пользуюсь.",
		"Молодая семья, обмениваемся детскими вещами, из которых дети выросли.",
		"Держу небольшую пасеку, периодически делюсь мёдом и инвентарём.",
		"Собираю и ремонтирую старую технику, рабочие экземпляры отдаю даром.",
	}

	users := make([]SeededUser, 0, count)

	for i := 0; i < count; i++ {
		firstName := firstNames[rand.Intn(len(firstNames))]
		lastName := lastNames[rand.Intn(len(lastNames))]
		name := fmt.Sprintf("%s %s", firstName, lastName)
		bio := bios[rand.Intn(len(bios))]
		contact := fmt.Sprintf("@%s_%s_%d", toLatin(firstName), toLatin(lastName), rand.Intn(10000))

		principal := uuid.New()
		profile := &models.Profile{
			Principal:   principal,
			Name:        name,
			Bio:         &bio,
			ContactInfo: &contact,
		}

		if err := s.profileRepo.Upsert(ctx, profile); err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}

		token, err := s.tokens.GenerateAccess(principal)
		if err != nil {
			return nil, fmt.Errorf("failed to issue dev token: %w", err)
		}

		users = append(users, SeededUser{Principal: principal, Name: name, Token: token})
	}

	return users, nil
}

// generateResources создаёт фейковые ресурсы.
func (s *SeedService) generateResources(ctx context.Context, owners []SeededUser, count int) error {
	if len(owners) == 0 {
		return fmt.Errorf("no owners available to create resources")
	}

	categories := []string{
		"мебель", "техника", "одежда", "книги", "инструменты",
		"растения", "продукты", "детские вещи", "спорт", "стройматериалы",
	}

	descriptions := map[string][]string{
		"мебель": {
			"Диван-кровать в хорошем состоянии, механизм работает, обивка без дыр. Самовывоз с третьего этажа.",
			"Письменный стол из ИКЕА, небольшие царапины на столешнице, ножки в порядке.",
			"Два кухонных стула, крепкие, недавно перетянуты. Отдаю в связи с переездом.",
		},
		"техника": {
			"Рабочий принтер, картридж почти полный. Отдаю, потому что перешёл на другой.",
			"Микроволновка, греет отлично, внутри чистая. Нужно забрать до выходных.",
			"Старый, но рабочий ноутбук — подойдёт для учёбы или как печатная машинка.",
		},
		"одежда": {
			"Пакет зимних вещей, размер M-L, всё постирано и выглажено.",
			"Мужская куртка, почти новая, не подошёл размер. Отдаю даром.",
		},
		"книги": {
			"Коробка художественной литературы, классика и современная проза, около тридцати книг.",
			"Учебники по математике и физике за старшие классы, состояние хорошее.",
		},
		"инструменты": {
			"Дрель с набором свёрел, пользовался пару раз. Отдаю на время или насовсем.",
			"Набор отвёрток и ключей, кое-что поржавело, но всё рабочее.",
		},
		"растения": {
			"Рассада томатов, осталось после высадки около двадцати кустов.",
			"Отростки комнатных растений: хлорофитум, традесканция, алоэ.",
		},
		"продукты": {
			"Излишки урожая кабачков и огурцов со своего огорода, всё свежее.",
			"Банка домашнего варенья из смородины, закатывал на той неделе.",
		},
		"детские вещи": {
			"Детская коляска-трансформер, после одного ребёнка, колёса в порядке.",
			"Пакет одежды на ребёнка 2-3 лет, всё чистое, без пятен.",
		},
		"спорт": {
			"Велосипед подростковый, нужна мелкая настройка тормозов, в остальном на ходу.",
			"Гантели 2x5 кг, отдаю за ненадобностью.",
		},
		"стройматериалы": {
			"Остатки ламината после ремонта, примерно 6 квадратных метров, одна пачка не вскрыта.",
			"Обрезки досок и бруса, подойдут для мелких поделок или дачи.",
		},
	}

	tagPool := []string{
		"самовывоз", "срочно", "даром", "обмен", "хорошее состояние",
		"требует ремонта", "новое", "б/у", "для дачи", "для детей",
	}

	locations := []string{
		"Москва", "Санкт-Петербург", "Новосибирск", "Екатеринбург", "Казань", "Нижний Новгород",
		"Челябинск", "Самара", "Омск", "Ростов-на-Дону", "Уфа", "Красноярск", "Воронеж",
		"Пермь", "Волгоград", "Краснодар", "Саратов", "Тюмень", "Тольятти", "Ижевск",
	}

	for i := 0; i < count; i++ {
		owner := owners[rand.Intn(len(owners))]
		category := categories[rand.Intn(len(categories))]
		pool := descriptions[category]
		description := pool[rand.Intn(len(pool))]
		location := locations[rand.Intn(len(locations))]

		numTags := rand.Intn(3) + 1
		tags := make([]string, 0, numTags)
		tagSet := make(map[string]bool)
		for len(tags) < numTags {
			tag := tagPool[rand.Intn(len(tagPool))]
			if !tagSet[tag] {
				tags = append(tags, tag)
				tagSet[tag] = true
			}
		}

		var lat, lon *float64
		if rand.Float32() > 0.4 {
			la := 43.0 + rand.Float64()*20.0
			lo := 30.0 + rand.Float64()*60.0
			lat = &la
			lon = &lo
		}

		resource := &models.Resource{
			OwnerID:     owner.Principal,
			Category:    category,
			Tags:        pq.StringArray(tags),
			Description: description,
			Quantity:    rand.Intn(5) + 1,
			Location:    location,
			Latitude:    lat,
			Longitude:   lon,
			Status:      models.ResourceStatusAvailable,
			ExpiresAt:   time.Now().Add(s.listingTTL),
		}

		if err := s.resourceRepo.Create(ctx, resource); err != nil {
			return fmt.Errorf("failed to create resource: %w", err)
		}
	}

	return nil
}

// toLatin транслитерирует русские имена в латиницу для контактов.
func toLatin(s string) string {
	translit := map[rune]string{
		'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo",
		'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
		'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
		'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch",
		'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
		'А': "A", 'Б': "B", 'В': "V", 'Г': "G", 'Д': "D", 'Е': "E", 'Ё': "Yo",
		'Ж': "Zh", 'З': "Z", 'И': "I", 'Й': "Y", 'К': "K", 'Л': "L", 'М': "M",
		'Н': "N", 'О': "O", 'П': "P", 'Р': "R", 'С': "S", 'Т': "T", 'У': "U",
		'Ф': "F", 'Х': "H", 'Ц': "Ts", 'Ч': "Ch", 'Ш': "Sh", 'Щ': "Sch",
	}

	result := ""
	for _, r := range s {
		if val, ok := translit[r]; ok {
			result += val
		} else {
			result += string(r)
		}
	}
	return result
}
