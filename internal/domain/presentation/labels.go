package presentation

import "strings"

var operationLabels = map[Operation]string{
	OperationRent: "Аренда",
	OperationSell: "Продажа",
}

var purposeLabels = map[string]string{
	"office":         "Офис",
	"workSpace":      "Рабочее пространство",
	"psn":            "Помещение свободного назначения",
	"bank":           "Банк",
	"cafe":           "Кафе",
	"restaurant":     "Ресторан",
	"canteen":        "Столовая",
	"fastFood":       "Фастфуд",
	"fitnes":         "Фитнес",
	"retail":         "Торговое помещение",
	"showRoom":       "Шоурум",
	"salesOffice":    "Офис продаж",
	"pharmacy":       "Аптека",
	"gasStation":     "АЗС",
	"medicalService": "Медицинский центр",
	"beautySalon":    "Салон красоты",
	"openGround":     "Открытая площадка",
	"warehouse":      "Склад",
	"safeKeeping":    "Ответственное хранение",
	"production":     "Производство",
	"autoService":    "Автосервис",
	"apartments":     "Апартаменты",
	"flat":           "Квартира",
	"room":           "Комната",
	"cottage":        "Коттедж",
	"townhouse":      "Таунхаус",
	"groundArea":     "Земельный участок",
}

var layoutLabels = map[string]string{
	"open":  "Открытая планировка",
	"rooms": "Кабинетная планировка",
	"mixed": "Смешанная планировка",
}

var stateLabels = map[string]string{
	"unknown":  "Состояние уточняется",
	"clean":    "Без отделки",
	"cosmetic": "Требуется косметический ремонт",
	"ready":    "Готово к въезду",
}

var areaFeatureLabels = map[string]string{
	"noWindows":     "Без окон",
	"ownEntrance":   "Отдельный вход",
	"wholeBuilding": "Здание целиком",
	"noLift":        "Нет лифта",
	"personalLift":  "Собственный лифт",
	"socleFloor":    "Цокольный этаж",
	"mansard":       "Мансарда",
	"loggia":        "Лоджия",
}

var priceAdditionalLabels = map[string]string{
	"operational": "эксплуатационные расходы",
	"utilities":   "коммунальные платежи",
	"water":       "водоснабжение",
	"electricity": "электроэнергия",
	"security":    "охрана",
	"parking":     "парковка",
}

var contractTypeLabels = map[string]string{
	"sell":       "Договор купли-продажи",
	"directRent": "Прямая аренда",
	"subRent":    "Субаренда",
}

var ventilationLabels = map[string]string{
	"natural":       "Естественная",
	"supply":        "Приточная",
	"supplyExhaust": "Приточно-вытяжная",
}

var conditioningLabels = map[string]string{
	"split":          "Сплит-системы",
	"multiSplit":     "Мульти-сплит системы",
	"vrf":            "VRF-система",
	"chillerFancoil": "Чиллер-фанкойл",
}

var supplyLabels = map[string]string{
	"central":    "Центральное",
	"autonomous": "Автономное",
}

var powerTypeLabels = map[string]string{
	"central":    "центральное",
	"autonomous": "автономное",
}

var fireSafetyLabels = map[string]string{
	"alarm":                  "Пожарная сигнализация",
	"autoFireFightingSystem": "Автоматическая система пожаротушения",
}

var entryLabels = map[string]string{
	"reception":   "ресепшн",
	"security":    "охрана",
	"postControl": "пропускная система",
	"alarm":       "сигнализация",
	"video":       "видеонаблюдение",
	"concierge":   "консьерж",
	"secureDoor":  "защищенная дверь",
	"ams":         "СКУД",
}

var parkingLabels = map[string]string{
	"natural":          "Стихийная",
	"freeOpen":         "Бесплатная открытая",
	"freeClosedWarm":   "Бесплатная крытая теплая",
	"freeClosedCold":   "Бесплатная крытая холодная",
	"paidOpen":         "Платная открытая",
	"paidClosedCold":   "Платная крытая холодная",
	"paidClosedWarm":   "Платная крытая теплая",
	"outsideTerritory": "За территорией",
	"onTerritory":      "На территории",
	"underground":      "Подземная",
	"roof":             "На крыше",
}

// infrastructureGroups сопоставляет объект инфраструктуры с группой иконок
var infrastructureGroups = map[string]struct {
	Icon string
	Name string
}{
	"groceryStore":       {"food", "Продуктовый магазин"},
	"groceryMarket":      {"food", "Продуктовый рынок"},
	"fastfood":           {"cafe", "Фастфуд"},
	"cafe":               {"cafe", "Кафе"},
	"restaurant":         {"cafe", "Ресторан"},
	"bar":                {"cafe", "Бар"},
	"tradeCenter":        {"shop", "Торговый центр"},
	"childGoodsMarket":   {"shop", "Детский магазин"},
	"cinema":             {"leisure", "Кинотеатр"},
	"childrenGarden":     {"kids", "Детский сад"},
	"childrenPlayground": {"kids", "Детская площадка"},
	"school":             {"kids", "Школа"},
	"medicine":           {"health", "Медицинский центр"},
	"fitnes":             {"sport", "Фитнес"},
	"waterpool":          {"sport", "Бассейн"},
	"carService":         {"car", "Автосервис"},
	"carWash":            {"car", "Автомойка"},
	"bankomat":           {"bank", "Банкомат"},
	"park":               {"park", "Парк"},
	"openWater":          {"park", "Водоем"},
}

// splitList разбирает список значений через запятую, пропуская пустые и "none"
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || p == "none" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// labelList переводит список значений в подписи, неизвестные значения пропускаются
func labelList(s string, labels map[string]string) []string {
	values := splitList(s)
	out := make([]string, 0, len(values))
	for _, v := range values {
		if label, ok := labels[v]; ok {
			out = append(out, label)
		}
	}
	return out
}
