package bot

import "github.com/corpusfit/corpus-bot/internal/telegram"

// Подписи кнопок главного меню и навигации.
const (
	btnSubscription = "✅Подписка"
	btnTraining     = "🏋🏽‍♀️Тренировка"
	btnRules        = "⚠️Правила"
	btnNutrition    = "🥗Питание"
	btnSubscribe    = "Оформить подписку"
	btnBackToMenu   = "Вернуться в меню"
)

func kbMain() *telegram.ReplyKeyboardMarkup {
	return telegram.NewReplyKeyboard(
		[]string{btnSubscription, btnTraining},
		[]string{btnRules, btnNutrition},
	)
}

func kbPlace() *telegram.ReplyKeyboardMarkup {
	return telegram.NewReplyKeyboard(
		[]string{"В зале", "Дома"},
		[]string{btnBackToMenu},
	)
}

func kbMonth() *telegram.ReplyKeyboardMarkup {
	return telegram.NewReplyKeyboard(
		[]string{"1 месяц", "2-3 месяц"},
		[]string{"4-5 месяц", "6-7 месяц"},
		[]string{"8-9 месяц", "10-12 месяц"},
		[]string{btnBackToMenu},
	)
}

func kbTrainingNums() *telegram.ReplyKeyboardMarkup {
	return telegram.NewReplyKeyboard(
		[]string{"1", "2", "3", "4"},
		[]string{"5", "6", "7", "8"},
		[]string{"9", "10", "11", "12"},
		[]string{btnBackToMenu},
	)
}

func kbTrainingGroups() *telegram.ReplyKeyboardMarkup {
	return telegram.NewReplyKeyboard(
		[]string{"Ягодицы", "Верх тела", "Ноги"},
		[]string{btnBackToMenu},
	)
}

func kbBack() *telegram.ReplyKeyboardMarkup {
	return telegram.NewReplyKeyboard([]string{btnBackToMenu})
}

func kbSubscribe() *telegram.ReplyKeyboardMarkup {
	return telegram.NewReplyKeyboard([]string{btnSubscribe, btnBackToMenu})
}

// kbPlans — выбор тарифа по названию плана.
func (b *Bot) kbPlans() *telegram.ReplyKeyboardMarkup {
	var titles []string
	for _, p := range b.plans {
		titles = append(titles, p.Title)
	}
	return telegram.NewReplyKeyboard(titles, []string{btnBackToMenu})
}
