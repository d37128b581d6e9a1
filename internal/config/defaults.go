package config

import "time"

const (
	defaultDatabasePath   = "./data/users.db"
	defaultAITimeout      = 2 * time.Minute
	defaultSessionTTL     = 24 * time.Hour
	defaultTypingInterval = 4 * time.Second
)

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Logger:   LoggerConfig{Level: "info", JSON: false},
		Database: DatabaseConfig{Path: defaultDatabasePath},
		Telegram: TelegramConfig{
			PrivateOnly:    true,
			PartHeader:     "📄 Часть %d/%d:\n\n",
			TypingInterval: defaultTypingInterval,
		},
		AI: AIConfig{Provider: ProviderGemini, Timeout: defaultAITimeout},
		Gemini: GeminiConfig{
			ModelName:   "gemini-2.0-flash",
			Temperature: 0.7,
			MaxRetries:  0,
			RetryDelay:  2 * time.Second,
		},
		OpenAI: OpenAIConfig{
			BaseURL:     "https://api.openai.com/v1",
			Model:       "gpt-4o-mini",
			Temperature: 0.7,
		},
		Chat: ChatConfig{
			ChunkSize:     4000,
			ProgressLimit: 5,
			SessionTTL:    defaultSessionTTL,
		},
		Onboarding: OnboardingConfig{NoneTokens: []string{"нет", "none", "no"}},
		Reset:      ResetConfig{CancelTokens: []string{"отмена", "нет", "cancel"}},
		Messages:   defaultMessages,
		Labels:     defaultLabels,
		Scheduler: SchedulerConfig{Tasks: map[string]TaskConfig{
			"sql_maintenance": {Enabled: true, Schedule: "0 0 4 * * 0"},
			"session_cleanup": {Enabled: true, Schedule: "0 */15 * * * *"},
		}},
	}
}

var defaultLabels = LabelsConfig{
	GenderMale:        "👨 Мужской",
	GenderFemale:      "👩 Женский",
	LevelBeginner:     "🟢 Новичок",
	LevelIntermediate: "🟡 Средний",
	LevelAdvanced:     "🔴 Продвинутый",
	GoalFitness:       "💪 Подтянутое тело",
	GoalCompetition:   "🏆 Выход на сцену (Olympia/IFBB)",
	LocationGym:       "🏋️ В зале",
	LocationHome:      "🏠 Дома",
	Workouts2:         "2 раза",
	Workouts3:         "3 раза",
	Workouts4:         "4 раза",
	Workouts5Plus:     "5+ раз",
	ConfirmReset:      "ДА УДАЛИТЬ",
	Cancel:            "❌ Отмена",

	MenuWorkoutPlan:        "🏋️ Новый план тренировок",
	MenuNutrition:          "🍎 Расчет питания",
	MenuSupplements:        "💊 Спортивное питание",
	MenuProgress:           "📊 Мой прогресс",
	MenuUpdateMeasurements: "📏 Обновить замеры",
	MenuSettings:           "⚙️ Настройки",
}

var defaultMessages = MessagesConfig{
	CoachMale:   "Ронни Коулман",
	CoachFemale: "Дженет Лайог",

	Welcome: "🏆 Добро пожаловать в IFBB Pro Dual-Coach AI!\n\n" +
		"Я твой персональный ИИ-тренер, который поможет достичь целей в фитнесе.\n" +
		"Для начала мне нужно узнать о тебе больше.\n\n" +
		"Укажи свой пол:",
	GreetingBack:   "Привет! Я {{.Coach}}, твой персональный тренер! 💪\n\nГотов продолжить работу над твоими целями?",
	Help:           defaultHelp,
	RegisterFirst:  "Сначала пройди регистрацию с помощью команды /start",
	GeneratorError: "Произошла ошибка при генерации ответа. Попробуй позже.",
	StorageError:   "❌ Не удалось сохранить данные. Попробуй позже.",

	CoachIntroMale:   "Привет! Я Ронни Коулман! 💪 Light weight, baby! Готов качаться по-настоящему?",
	CoachIntroFemale: "Привет! Я Дженет Лайог! ✨ Создадим красивое и сильное тело вместе!",
	AskAge:           "Теперь укажи свой возраст (в годах):",
	AskHeight:        "Отлично! Теперь укажи свой рост в сантиметрах:",
	AskWeight:        "Супер! Теперь укажи свой текущий вес в килограммах:",
	AskMeasurements: "Отлично! Теперь нужны основные замеры.\n" +
		"Введи через запятую: обхват груди, талии, бедер, бицепса (в см)\n" +
		"Например: 100, 80, 95, 35",
	AskLevel:    "Отлично! Теперь выбери свой уровень подготовки:",
	AskGoal:     "Какая у тебя цель?",
	AskLocation: "Где планируешь тренироваться?",
	AskWorkouts: "Сколько раз в неделю ты можешь тренироваться?",
	AskInjuries: "Есть ли у тебя травмы или ограничения? (напиши 'нет' если их нет)",

	InvalidGender:          "Пожалуйста, выбери пол из предложенных вариантов.",
	AgeNotNumeric:          "Пожалуйста, введи возраст числом:",
	AgeOutOfRange:          "Возраст должен быть от 16 до 80 лет. Попробуй еще раз:",
	HeightNotNumeric:       "Пожалуйста, введи рост числом:",
	HeightOutOfRange:       "Рост должен быть от 140 до 220 см. Попробуй еще раз:",
	WeightNotNumeric:       "Пожалуйста, введи вес числом:",
	WeightOutOfRange:       "Вес должен быть от 40 до 200 кг. Попробуй еще раз:",
	MeasurementsCount:      "Нужно ввести ровно 4 замера через запятую. Попробуй еще раз:",
	MeasurementsNotNumeric: "Пожалуйста, введи замеры числами через запятую:",
	MeasurementsOutOfRange: "Замеры вне допустимых пределов: грудь 60–150, талия 50–120, бедра 60–150, бицепс 20–60 см. Попробуй еще раз:",
	InvalidLevel:           "Пожалуйста, выбери уровень из предложенных вариантов.",
	InvalidGoal:            "Пожалуйста, выбери цель из предложенных вариантов.",
	InvalidLocation:        "Пожалуйста, выбери локацию из предложенных вариантов.",
	InvalidWorkouts:        "Пожалуйста, выбери количество тренировок из предложенных вариантов.",

	OnboardingCompleted: "🎉 Отлично! Регистрация завершена!\n\n" +
		"Теперь я, {{.Coach}}, буду твоим персональным тренером.\n" +
		"Учту, что ты можешь тренироваться {{.WorkoutsPerWeek}} раз в неделю.\n" +
		"Готов создать для тебя индивидуальную программу! 💪",
	OnboardingCancelled: "Регистрация отменена. Когда будешь готов, отправь /start.",

	GeneratingWorkout:     "⏳ Создаю персональный план тренировок...",
	GeneratingNutrition:   "⏳ Рассчитываю индивидуальный план питания...",
	GeneratingSupplements: "⏳ Подбираю спортивное питание...",
	Thinking:              "⏳ Думаю над ответом...",

	AskNewMeasurements: "Введи новые замеры через запятую: обхват груди, талии, бедер, бицепса (в см)\n" +
		"Например: 102, 78, 97, 36",
	MeasurementsUpdated: "✅ Замеры обновлены!\n\n📏 Новые замеры:\n{{measurements .Measurements}}\n\n📊 Данные сохранены в историю прогресса.",
	Settings:            defaultSettings,
	Progress:            defaultProgress,

	ResetConfirm: "⚠️ ВНИМАНИЕ! Это удалит ВСЕ твои данные:\n\n" +
		"🗑️ Профиль и настройки\n" +
		"📊 Историю прогресса\n" +
		"🏋️ Сохраненные планы\n\n" +
		"❓ Ты уверен, что хочешь начать с чистого листа?\n\n" +
		"Напиши 'ДА УДАЛИТЬ' для подтверждения или нажми '❌ Отмена'.",
	ResetNothing: "🤔 У тебя еще нет данных для сброса.\nОтправь /start чтобы начать регистрацию!",
	ResetDone: "🗑️ Все данные удалены!\n\n" +
		"🆕 Теперь ты можешь начать с чистого листа.\n" +
		"Отправь /start для новой регистрации!",
	ResetCancelled: "✅ Сброс отменен!\nТвои данные в безопасности.",
	ResetReprompt: "🤔 Не понял твой ответ.\n\n" +
		"Напиши 'ДА УДАЛИТЬ' для подтверждения удаления всех данных\n" +
		"или нажми '❌ Отмена' чтобы оставить все как есть.",
	ResetFailed: "❌ Произошла ошибка при удалении данных.\nПопробуй позже.",

	Farewell:      defaultFarewell,
	FarewellGuest: "👋 До свидания!\n\nСпасибо, что попробовал IFBB Pro Dual-Coach AI!\nВозвращайся когда захочешь начать тренироваться! 💪",

	MeasurementLabels: MeasurementLabels{
		Weight: "Вес",
		Chest:  "Грудь",
		Waist:  "Талия",
		Hips:   "Бедра",
		Bicep:  "Бицепс",
	},
	BMICategories: map[string]string{
		"underweight": "недостаточный вес",
		"normal":      "нормальный вес",
		"overweight":  "избыточный вес",
		"obese":       "ожирение",
	},
}

const defaultHelp = `🏆 IFBB Pro Dual-Coach AI - Твой персональный ИИ-тренер

🔥 Возможности:
• Персональные планы тренировок на 4 недели
• Точный расчет КБЖУ и план питания
• Рекомендации по спортивному питанию
• Отслеживание прогресса и замеров
• Адаптация под твой уровень и цели
• Учет количества тренировок в неделю (2-5+)

👨‍🏫 Тренеры:
• Ронни Коулман (для мужчин) - 8x Mr. Olympia
• Дженет Лайог (для женщин) - Bikini Olympia Champion

📱 Команды:
/start - Начать работу с ботом
/help - Показать эту справку
/reset - Полный сброс данных и перезапуск
/stop - Остановить работу с ботом

🎯 Готов стать лучшей версией себя?
Если еще не зарегистрирован - жми /start!
Если хочешь изменить данные - используй /reset!`

const defaultFarewell = `👋 До свидания от {{.Coach}}!

🏆 Помни: чемпионы никогда не сдаются!
💪 Твои данные сохранены и ждут твоего возвращения.

🔄 Когда будешь готов продолжить - просто напиши /start
🗑️ Если захочешь начать заново - используй /reset

✨ Удачи в достижении твоих целей!

{{if .Male}}💥 Yeah buddy! Light weight! Увидимся на тренировке!{{else}}✨ Оставайся сильной и красивой! До встречи!{{end}}`

const defaultSettings = `⚙️ Настройки

👤 Пол: {{.Gender}}
🎂 Возраст: {{.Age}}
📏 Рост: {{num .HeightCm}} см
⚖️ Вес: {{num .WeightKg}} кг
📐 ИМТ: {{num .BMI}} ({{.BMICategory}})
📈 Уровень: {{.Level}}
🎯 Цель: {{.Goal}}
📍 Место тренировок: {{.Location}}
🗓 Тренировок в неделю: {{.Workouts}}
🩹 Травмы: {{if .Injuries}}{{.Injuries}}{{else}}нет{{end}}

🔥 Расход энергии: {{.Macros.Calories}} ккал в день
🥩 Б/Ж/У: {{.Macros.ProteinG}} / {{.Macros.FatG}} / {{.Macros.CarbsG}} г
🏋️ Последний план тренировок: {{if .LastWorkoutPlan}}{{.LastWorkoutPlan}}{{else}}еще не создан{{end}}

Для сброса всех данных и новой регистрации используй команду /reset`

const defaultProgress = `{{if .Entries}}📊 Твой прогресс:
{{range .Entries}}
📅 {{.Date}}
⚖️ Вес: {{num .WeightKg}} кг
📏 Замеры:
{{measurements .Measurements}}{{with .Changes}}
📈 Изменения:
{{.}}{{end}}
{{end}}
📋 Текущие данные:
⚖️ Вес: {{num .WeightKg}} кг
📏 Замеры:
{{measurements .Current}}{{else}}📊 Твой профиль:

⚖️ Текущий вес: {{num .WeightKg}} кг

📏 Замеры тела:
{{measurements .Current}}

📈 История изменений пуста.
Обновляй замеры регулярно, чтобы отслеживать прогресс!{{end}}`
