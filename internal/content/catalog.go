// Package content хранит программу тренировок: планы по месту занятий,
// блоку месяцев и номеру либо направлению тренировки. Видео адресуются
// по file_id, однажды загруженным в Telegram.
package content

// Place — место тренировок.
type Place string

const (
	PlaceGym  Place = "gym"
	PlaceHome Place = "home"
)

// PlaceFromButton переводит подпись кнопки в место тренировок.
func PlaceFromButton(text string) (Place, bool) {
	switch text {
	case "В зале":
		return PlaceGym, true
	case "Дома":
		return PlaceHome, true
	}
	return "", false
}

// MonthBlocks — блоки программы в порядке прохождения. Первый месяц
// размечен номерами тренировок 1..12, остальные блоки — направлениями.
var MonthBlocks = []string{"1", "2-3", "4-5", "6-7", "8-9", "10-12"}

// GroupKeys — направления тренировок в блоках после первого месяца.
var GroupKeys = []string{"Ягодицы", "Верх тела", "Ноги"}

// IsMonthBlock сообщает, является ли key допустимым блоком месяцев.
func IsMonthBlock(key string) bool {
	for _, b := range MonthBlocks {
		if b == key {
			return true
		}
	}
	return false
}

// IsGroupKey сообщает, является ли key направлением тренировки.
func IsGroupKey(key string) bool {
	for _, g := range GroupKeys {
		if g == key {
			return true
		}
	}
	return false
}

// Routine — одна тренировка: ролики упражнений и текст плана.
type Routine struct {
	Videos []string
	Text   string
}

// Lookup возвращает тренировку по месту, блоку месяцев и ключу.
// Ключ первого месяца — номер "1".."12", остальных блоков — направление.
func Lookup(place Place, month, key string) (Routine, bool) {
	months, ok := catalog[place]
	if !ok {
		return Routine{}, false
	}
	routines, ok := months[month]
	if !ok {
		return Routine{}, false
	}
	r, ok := routines[key]
	return r, ok
}

// MonthDescription возвращает вводный текст блока месяцев.
func MonthDescription(month string) string {
	if d, ok := monthDescriptions[month]; ok {
		return d
	}
	return "Выбирайте тренировку 👇"
}

var monthDescriptions = map[string]string{
	"1": "🟢 Месяц 1 — адаптация и обучение движению\n" +
		"В этот месяц мы работаем по full body, чтобы включить всё тело и сформировать правильные двигательные навыки.\n" +
		"Мы подготавливаем суставы, мышцы и нервную систему к регулярным нагрузкам, развиваем нейромышечные связи и учимся чувствовать целевые мышцы. " +
		"Это безопасный и обязательный фундамент для дальнейшего прогресса.\n" +
		"Выбирайте тренировку 👇",
	"2-3": "🟡 Месяцы 2–3 — развитие базовой силы\n" +
		"Переходим к сплиту ягодицы / верх / ноги. Нагрузка становится выше, а техника — стабильнее.\n" +
		"Мы начинаем первое постепенное увеличение рабочих весов, снижаем повторения и развиваем силу в ключевых движениях. " +
		"Этот этап закладывает структурную базу для роста мышц и дальнейших этапов.\n" +
		"Выбирайте тренировку 👇",
	"4-5": "🟠 Месяцы 4–5 — рост силы и мышечной массы\n" +
		"Тренировки становятся плотнее и объёмнее. Благодаря ранее сформированной технике мы можем безопасно повышать нагрузки.\n" +
		"На этом этапе активно растёт сила, увеличивается мышечная масса, тело начинает визуально меняться. " +
		"Мы укрепляем фундамент и продвигаем рабочие веса вверх.\n" +
		"Выбирайте тренировку 👇",
	"6-7": "🔴 Месяцы 6–7 — повышение интенсивности и суперсеты\n" +
		"Вы уже хорошо контролируете технику, поэтому увеличиваем интенсивность. Появляются суперсеты и более сложные варианты упражнений.\n" +
		"Этот этап развивает выносливость, ускоряет метаболизм и улучшает качество выполнения движений в условиях усталости. " +
		"Особенный акцент делаем на ягодицы.\n" +
		"Выбирайте тренировку 👇",
	"8-9": "🔵 Месяцы 8–9 — работа над формой и изоляцией\n" +
		"После освоения техники и развития силы мы переходим к более точечной работе. Больше изоляции, контролируемый темп, внимание к слабым местам. " +
		"Особенно прорабатываем руки, плечи и спину.\n" +
		"Мы продолжаем прогрессировать в весах, но основной акцент — на качество выполнения упражнений и формирование рельефа.\n" +
		"Выбирайте тренировку 👇",
	"10-12": "🟣 Месяцы 10–12 — контроль движения и работа над рельефом\n" +
		"На этом этапе тренировки становятся максимально осознанными. Мы детально контролируем амплитуду, темп и технику.\n" +
		"Прогрессия весов остаётся, но главный фокус — чистое выполнение движений, акцент на нужных мышцах и формирование финального рельефа.\n" +
		"Вы уже тренируетесь как опытный атлет.\n" +
		"Выбирайте тренировку 👇",
}

// Таблицы программы. Пополняются по мере загрузки роликов: админ
// пересылает боту видео и получает file_id в ответ.
var catalog = map[Place]map[string]map[string]Routine{
	PlaceGym: {
		"1": {
			"1": {
				Videos: []string{
					"BAACAgIAAxkBAANLaRBugIGMmYsvxdVxN9S6YvjBaxwAAneKAAJTQ4FIjcW71ASuWEE2BA",
					"BAACAgIAAxkBAANNaRBvCOTElsWiiTUUafTBoP1nHRYAAnuKAAJTQ4FIBW9KAAH7_NoNNgQ",
					"BAACAgIAAxkBAANPaRBvGKx-Olg42ZC642MQ70hfbboAAnyKAAJTQ4FIdwmP7gHgs1I2BA",
					"BAACAgIAAxkBAANRaRBvKlVCSYFsPwku7ZA3Chqkm48AAn2KAAJTQ4FIsTfWDHXB8cA2BA",
					"BAACAgIAAxkBAANTaRBvRrLJpxb0_v0nzcEm3sSUr24AAn-KAAJTQ4FIDUY6VGH-6E42BA",
					"BAACAgIAAxkBAAPLaRByZ98nJtSW6yHGlj60-F8afeYAAqWKAAJTQ4FId40F9PgFpHo2BA",
				},
				Text: "🏋️‍♀️ Тренировка 1 (Ягодицы, Бёдра, Спина)\n\n" +
					"🔹 Упражнения по порядку\n" +
					"1. Приседания в Смите — 3×20-15-12\n" +
					"2. Ягодичный мостик в Смите/со штангой — 4×20-15-12\n" +
					"3. Тяга вертикального блока к груди — 3×15-15-12\n" +
					"4. Разгибания ног в тренажёре — 3×15\n" +
					"5. Разведения ног в тренажёре — 3×25-20-15\n" +
					"6. Подъём гантелей на бицепс стоя — 3×15\n\n" +
					"📌 Основная нагрузка:\n" +
					"• Ягодицы (мостик, присед, разведения)\n" +
					"• Квадрицепсы (присед, разгибания)\n" +
					"• Спина (тяга вертикального блока)\n" +
					"• Бицепсы (подъём гантелей)\n",
			},
			"2": {
				Videos: []string{
					"BAACAgIAAxkBAAPiaRBzxchLBoP8b01N3pviPlHEjMoAAvOKAAJTQ4FIpNRbd0-fUbg2BA",
					"BAACAgIAAxkBAAPjaRBzxV4tag06ola7X3QBe7HixmUAAvSKAAJTQ4FI_9RFjqZW7po2BA",
					"BAACAgIAAxkBAAPfaRBzxdHp7FzBvUOdQMNVbGYWoh8AAu-KAAJTQ4FI3ryPAnB1jYI2BA",
					"BAACAgIAAxkBAAPgaRBzxYSnhKOaAAGQzBza6JRY8SRKAALwigACU0OBSAFjvK46uDBuNgQ",
					"BAACAgIAAxkBAAPhaRBzxYT7l8aXwwK3Qr1npQVso7EAAvGKAAJTQ4FIJZvfdCvLJHI2BA",
				},
				Text: "🏋️‍♀️‍ Тренировка 2 (Ягодицы, Бёдра, Спина, Руки)\n\n" +
					"🔹 Упражнения по порядку\n" +
					"1.  Румынская тяга со штангой — 3 подхода × 20-15-12 повторений\n" +
					"2.  Жим ногами в тренажёре с обычной постановкой ног — 3 подхода × 20-15-12 повторений\n" +
					"3.  Тяга горизонтального блока к поясу — 3 подхода × 12-12-12 повторений\n" +
					"4.  Жим гантелей сидя (плечи) — 3 подхода × 12-12-12 повторений\n" +
					"5.  Отжимания от скамьи на трицепс — 3 подхода × 12-12-12 повторений\n\n" +
					"📌 Основная нагрузка тренировки:\n" +
					"• Ягодицы и задняя поверхность бедра (румынская тяга).\n" +
					"• Квадрицепсы и ягодицы (жим ногами).\n" +
					"• Средняя часть спины (горизонтальная тяга).\n" +
					"• Плечи (жим гантелей).\n" +
					"• Трицепсы (отжимания от скамьи).\n",
			},
			"3": {
				Videos: []string{
					"BAACAgIAAxkBAAIBv2kQhRqVSJluiIVCtGO0CPzgJhthAAL7iwACU0OBSMRRqTjqoqviNgQ",
					"BAACAgIAAxkBAAIBwWkQhSmxx9EBwgxvQNQmyoQKp9FMAAL8iwACU0OBSMp1HYHHNQLlNgQ",
					"BAACAgIAAxkBAAIBw2kQhTQZ9ZOfQI6FS1q0cQeUAehjAAL9iwACU0OBSDfqtDnL0PcQNgQ",
					"BAACAgIAAxkBAAIBxWkQhUB9EGiEqAFkLpYGrQo90gEbAAL-iwACU0OBSMeQeaiI346FNgQ",
					"BAACAgIAAxkBAAIBx2kQhU5OqYl-dqhU4QyV-jgHAAGDSwAC_4sAAlNDgUi4O_NfnUNUszYE",
				},
				Text: "🏋️‍♀️‍ Тренировка 3 (Ягодицы, Бёдра, Спина, Плечи, Икры)\n\n" +
					"🔹 Упражнения по порядку\n" +
					"1.  Зашагивания на платформу с гантелями — 3 подхода × 15-15-12 повторений на каждую ногу\n" +
					"2.  Подтягивания в гравитроне узким хватом — 3 подхода × 12-12-12 повторений\n" +
					"3.  Сгибания ног в тренажёре — 3 подхода × 15-12-12 повторений\n" +
					"4.  Разведения гантелей в стороны стоя — 3 подхода × 12-12-12 повторений\n" +
					"5.  Подъёмы на носки в тренажёре или с утяжелением — 3 подхода × 20-15-15 повторений\n\n" +
					"📌 Основная нагрузка тренировки:\n" +
					"• Ягодицы и квадрицепсы (зашагивания).\n" +
					"• Спина и бицепсы (подтягивания в гравитроне).\n" +
					"• Задняя поверхность бедра (сгибания ног).\n" +
					"• Плечи (разведения гантелей).\n" +
					"• Икры (подъёмы на носки).\n",
			},
		},
		"2-3": {
			"Ягодицы": {
				Videos: []string{
					"BAACAgIAAxkBAAIEwWkQrJripz9L9C0ijFn0JUNKpHmOAAJ6igACU0OJSHCdMXA2u0APNgQ",
					"BAACAgIAAxkBAAIEw2kQrKdsOOesqcgpAut8_GWSU3XyAAJ8igACU0OJSMg4DBMxjyGiNgQ",
					"BAACAgIAAxkBAAIExWkQrLM1F4Ztbrxs4QOlRIAeIVb1AAJ9igACU0OJSE9aV87OtnqSNgQ",
					"BAACAgIAAxkBAAIEx2kQrL88wCGrIjyoaP8e2oT5DIFxAAJ-igACU0OJSBjO7lJz7VEHNgQ",
					"BAACAgIAAxkBAAIEyWkQrMn-irHSUDQYktpQk21bcl_bAAKCigACU0OJSAIfLpNv-LmpNgQ",
				},
				Text: "🏋️‍ Тренировка А (Ягодицы, 2-3 месяц)\n\n" +
					"🔹 Упражнения по порядку\n" +
					"1.  Гиперэкстензия «лягушка» на ягодицы — 3×15-15-15\n" +
					"2.  Ягодичный мостик со штангой или в тренажёре — 4×25-20-15-12\n" +
					"3.  Болгарские сплит-приседания с гантелями — 3×15-15-12 на каждую ногу\n" +
					"4.  Махи назад в кроссовере — 3×20-15-12 на каждую ногу\n" +
					"5.  Жим ногами (в тренажёре) с широкой постановкой ног — 4×20-15-15-12\n\n" +
					"📌 Основная нагрузка тренировки:\n" +
					"• Ягодицы (главный акцент: гиперэкстензия, мостик, махи, жим ногами).\n" +
					"• Задняя поверхность бедра (гиперэкстензия, мостик, жим ногами).\n" +
					"• Квадрицепсы (болгарские сплит-приседания, жим ногами).\n" +
					"• Кор (статическая работа в болгарских сплитах, махах).\n",
			},
			"Верх тела": {
				Videos: []string{
					"BAACAgIAAxkBAAIFYGkiww691thaURBG3LUUQFoy5S3WAAJMiwAChUUYST1wjmnGm6AHNgQ",
					"BAACAgIAAxkBAAIFYmkiwxcFpHAoiTzbUndiIzQfu3rdAAJNiwAChUUYSTXjvKsiByUYNgQ",
				},
				Text: "🏋️‍ Тренировка Б (Верх тела, 2-3 месяц)\n\n" +
					"🔹 Упражнения по порядку\n" +
					"1.  Подтягивания в гравитроне широким хватом — 4×15-12-12-10\n" +
					"2.  Тяга штанги к поясу — 4×15-15-12-12\n" +
					"3.  Разведения гантелей в стороны сидя на наклонной скамье — 3×15-15-12\n" +
					"4.  Жим гантелей сидя — 3×15-15-12\n" +
					"5.  Французский жим с гантелью сидя — 3×12-12-12\n" +
					"6.  Сгибания рук со штангой стоя — 3×12-12-12\n\n" +
					"📌 Основная нагрузка тренировки:\n" +
					"• Спина (широчайшие, ромбовидные, трапеции — подтягивания, тяги).\n" +
					"• Плечи (дельтовидные — жим, разведения).\n" +
					"• Трицепсы (французский жим).\n" +
					"• Бицепсы (сгибания рук, подтягивания).\n",
			},
			"Ноги": {
				Videos: []string{
					"BAACAgIAAxkBAAII4Wkkjv1mqpJXia0NbzBSnNdw-EkYAAJKiQAC2eApSVzvG-3OWeexNgQ",
					"BAACAgIAAxkBAAII42kkjwW1A-ynw9rHtGtwdiFkMxnxAAJLiQAC2eApSfEr_8b45MWpNgQ",
					"BAACAgIAAxkBAAII5Wkkjwxy4Ky1wIsp9pOVa27aRJ8iAAJMiQAC2eApSchuOYUB1q_eNgQ",
				},
				Text: "🏋️‍♀️ Тренировка C (Ноги, 2-3 месяц)\n\n" +
					"🔹 Упражнения по порядку\n" +
					"1.  Приседания со штангой или в Смите — 4 подхода × 20-15-15-12 повторений\n" +
					"2.  Сгибания ног в тренажёре — 3 подхода × 15 повторений\n" +
					"3.  Румынская тяга со штангой — 4 подхода × 20-15-15-12 повторений\n" +
					"4.  Выпады с гантелями шагая по залу — 3 подхода × 15 повторений на каждую ногу (30 шагов)\n" +
					"5.  Подъёмы на носки в тренажёре или с утяжелением — 4 подхода × 20-20-20-20 повторений\n\n" +
					"📌 Основная нагрузка тренировки:\n" +
					"• Ягодицы (главный акцент: присед, румынская тяга, выпады).\n" +
					"• Задняя поверхность бедра (сгибания, румынская тяга).\n" +
					"• Квадрицепсы (присед, выпады).\n" +
					"• Икры (подъёмы на носки).\n",
			},
		},
	},
	PlaceHome: {
		"1": {
			"1": {
				Videos: []string{
					"BAACAgIAAxkBAAIGn2ki5zdiii-KWP2szpM4AAG9zvuTwQACDI4AAoVFGEmDRYtq1EspYjYE",
					"BAACAgIAAxkBAAIGoWki505oFuC6R_1VYKS-UI4QioLrAAIOjgAChUUYSULEbdTKft9ZNgQ",
					"BAACAgIAAxkBAAIGo2ki51j_a-MAAW53I80AAUsIRi2ZZtEAAg-OAAKFRRhJ6q782RBowIs2BA",
					"BAACAgIAAxkBAAIGpWki52PKvjgU43Kym0D7TfYz6rr-AAIQjgAChUUYSVEGPlp-Za8YNgQ",
				},
				Text: "🏠 Тренировка 1 (Всё тело, дома)\n\n" +
					"🔹 Упражнения по порядку\n" +
					"1. Приседания с собственным весом — 3×20\n" +
					"2. Ягодичный мостик на полу — 4×20-15-15-12\n" +
					"3. Отжимания с колен — 3×12\n" +
					"4. Выпады назад на месте — 3×15 на каждую ногу\n" +
					"5. Планка — 3×40 секунд\n\n" +
					"📌 Основная нагрузка:\n" +
					"• Ягодицы и бёдра (присед, мостик, выпады)\n" +
					"• Грудь и трицепсы (отжимания)\n" +
					"• Кор (планка)\n",
			},
			"2": {
				Videos: []string{
					"BAACAgIAAxkBAAIHG2ki7FLlJIGjWKAWsxdCR224nO_yAAJhjgAChUUYSYgRx8VDUS2fNgQ",
					"BAACAgIAAxkBAAIHHWki7Fuq2ufqWnC4ZTjP_nkpqZlxAAJijgAChUUYSXQPokzpvw6GNgQ",
					"BAACAgIAAxkBAAIHH2ki7GcGg7WjxHgtw8dgiFcqY9HkAAJjjgAChUUYSbUDm_KtXzZONgQ",
				},
				Text: "🏠 Тренировка 2 (Ягодицы, Спина, дома)\n\n" +
					"🔹 Упражнения по порядку\n" +
					"1. Румынская тяга с гантелями — 3×15\n" +
					"2. Ягодичный мостик на одной ноге — 3×12 на каждую ногу\n" +
					"3. Тяга гантелей в наклоне — 3×12\n" +
					"4. Махи ногой назад стоя — 3×20 на каждую ногу\n\n" +
					"📌 Основная нагрузка:\n" +
					"• Ягодицы и задняя поверхность бедра (тяга, мостик, махи)\n" +
					"• Спина (тяга в наклоне)\n",
			},
		},
		"2-3": {
			"Ягодицы": {
				Videos: []string{
					"BAACAgIAAxkBAAIH0mkjDQVvWtOP3l6Q2QABhQpbFgyhtAACtYcAAoVFIEl3ZgEe5FA5hTYE",
					"BAACAgIAAxkBAAIH1GkjDRnOjAtFLA877jsM1wj3xnVPAAK4hwAChUUgSc-c9LSRXMYYNgQ",
					"BAACAgIAAxkBAAIH1mkjDS76UC1GcYWmDhIXt7P94tKqAAK6hwAChUUgSSqP5Z3MibKmNgQ",
				},
				Text: "🏠 Тренировка А (Ягодицы, 2-3 месяц, дома)\n\n" +
					"🔹 Упражнения по порядку\n" +
					"1. Ягодичный мостик с резинкой — 4×25-20-15-12\n" +
					"2. Болгарские сплит-приседания с опорой на стул — 3×15 на каждую ногу\n" +
					"3. Отведения ноги в сторону с резинкой — 3×20 на каждую ногу\n" +
					"4. Присед с паузой внизу — 3×15\n\n" +
					"📌 Основная нагрузка:\n" +
					"• Ягодицы (мостик, отведения, сплит-присед)\n" +
					"• Квадрицепсы (присед, сплит-присед)\n",
			},
		},
	},
}
