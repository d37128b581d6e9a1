package generator

import (
	"fmt"
	"math"
	"strings"
	"text/template"

	"github.com/edgard/dualcoach/internal/database"
	"github.com/edgard/dualcoach/internal/fitness"
)

// MalePersona is the coach voice for male profiles.
const MalePersona = `Ты — Ронни Коулман (Ronnie Coleman), 8-кратный "Мистер Олимпия".
Стиль: мощный, харизматичный, мотивирующий ("Light weight, baby!", "Yeah buddy!"), упор на силовые показатели и экстремальную массу.`

// FemalePersona is the coach voice for female profiles.
const FemalePersona = `Ты — Дженет Лайог (Janet Layug), чемпионка "Bikini Olympia".
Стиль: профессиональный, эстетичный, фокус на пропорциях, качестве кожи и мышечном тонусе.`

// SystemInstruction is rendered with the profile and sent as the system
// prompt of every request.
const SystemInstruction = `IFBB Pro Dual-Coach AI

Role: Ты — гибридный ИИ-ассистент, объединяющий двух легенд мирового бодибилдинга.

{{.Persona}}

Goal: Создавать индивидуальные программы тренировок и питания, вести пользователя от новичка до уровня подготовки к турнирам "Olympia" или "IFBB World Championships".

Данные пользователя:
- Пол: {{.Gender}}
- Возраст: {{.Age}}
- Рост: {{.Height}} см
- Вес: {{.Weight}} кг
- Замеры: грудь {{.Chest}} см, талия {{.Waist}} см, бедра {{.Hips}} см, бицепс {{.Bicep}} см
- Уровень: {{.Level}}
- Цель: {{.Goal}}
- Локация: {{.Location}}
- Тренировок в неделю: {{.Workouts}}
- Травмы: {{.Injuries}}

Core Capabilities:
1. Training Management: Генерируй тренировочный план на 4 недели (Microcycle). Используй принципы прогрессии нагрузок, периодизации и метаболического отклика.
2. Nutrition & Calories: Рассчитывай КБЖУ на основе формулы Миффлина-Сан Жеора с поправкой на коэффициент активности и цель.
3. Sports Supplements: Рекомендуй только доказанные добавки исходя из дефицитов и целей.

Constraints:
- Никаких общих советов. Только конкретные упражнения, количество подходов и повторений.
- Соблюдай тон выбранного персонажа, но сохраняй научную точность.
- В конце каждого ответа — мотивирующая цитата в стиле персонажа.

Отвечай на русском языке.`

// WorkoutInstruction asks for a four week plan.
const WorkoutInstruction = `Создай детальный план тренировок на 4 недели.

Требования:
- Ровно {{.Workouts}} тренировочных дней в неделю
- Укажи конкретные упражнения, подходы, повторения
- Учти уровень подготовки и цель пользователя
- Добавь прогрессию нагрузок по неделям
- Включи разминку и заминку
{{- if .Home}}
- Тренировки дома: используй упражнения с минимальным инвентарем
{{- end}}

Формат ответа должен содержать:
1. Общие принципы программы
2. Недельный сплит
3. Детальные тренировки по дням
4. Рекомендации по прогрессии`

// NutritionInstruction asks for a meal plan around precomputed targets.
const NutritionInstruction = `Составь индивидуальный план питания.

Расчет уже выполнен:
- Базовый обмен (Миффлин-Сан Жеор): {{.BMR}} ккал
- Расход с учетом активности: {{.TDEE}} ккал
- Цель по калориям: {{.Calories}} ккал
- Белки: {{.Protein}} г, жиры: {{.Fat}} г, углеводы: {{.Carbs}} г

Предоставь:
1. Точные цифры КБЖУ в день
2. Распределение по приемам пищи
3. Примерное меню на день
4. Рекомендации по времени приема пищи относительно тренировок`

// SupplementInstruction asks for evidence-based supplements.
const SupplementInstruction = `Порекомендуй спортивные добавки на основе цели и уровня подготовки.

Включи только научно обоснованные добавки:
- Креатин моногидрат
- Протеин (сывороточный/казеиновый)
- Аминокислоты (BCAA/EAA)
- Витаминно-минеральные комплексы
- Омега-3

Для каждой добавки укажи:
1. Дозировку
2. Время приема
3. Ожидаемый эффект
4. Приоритет (обязательно/желательно/опционально)`

// ChatInstruction wraps a free-form question.
const ChatInstruction = `Вопрос пользователя: {{.Message}}`

var (
	systemTmpl     = template.Must(template.New("system").Parse(SystemInstruction))
	workoutTmpl    = template.Must(template.New("workout").Parse(WorkoutInstruction))
	nutritionTmpl  = template.Must(template.New("nutrition").Parse(NutritionInstruction))
	supplementTmpl = template.Must(template.New("supplements").Parse(SupplementInstruction))
	chatTmpl       = template.Must(template.New("chat").Parse(ChatInstruction))
)

var (
	genderNames   = map[fitness.Gender]string{fitness.GenderMale: "мужской", fitness.GenderFemale: "женский"}
	levelNames    = map[fitness.Level]string{fitness.LevelBeginner: "новичок", fitness.LevelIntermediate: "средний", fitness.LevelAdvanced: "продвинутый"}
	goalNames     = map[fitness.Goal]string{fitness.GoalFitness: "подтянутое тело", fitness.GoalCompetition: "выход на сцену (Olympia/IFBB)"}
	locationNames = map[fitness.Location]string{fitness.LocationGym: "зал", fitness.LocationHome: "дом"}
)

// Prompt is a rendered request: a system instruction and the user turn.
type Prompt struct {
	System string
	User   string
}

// BuildPrompt renders the instructions for req.
func BuildPrompt(req Request) (Prompt, error) {
	p := req.Profile
	if p == nil {
		return Prompt{}, fmt.Errorf("build %s prompt: profile is required", req.Task)
	}

	system, err := execute(systemTmpl, profileData(p))
	if err != nil {
		return Prompt{}, err
	}

	var user string
	switch req.Task {
	case TaskWorkout:
		user, err = execute(workoutTmpl, struct {
			Workouts string
			Home     bool
		}{workoutsLabel(p.WorkoutsPerWeek), p.Location == fitness.LocationHome})
	case TaskNutrition:
		user, err = execute(nutritionTmpl, nutritionData(p))
	case TaskSupplements:
		user, err = execute(supplementTmpl, nil)
	case TaskChat:
		if strings.TrimSpace(req.Message) == "" {
			return Prompt{}, fmt.Errorf("build chat prompt: message is required")
		}
		user, err = execute(chatTmpl, struct{ Message string }{req.Message})
	default:
		return Prompt{}, fmt.Errorf("build prompt: unknown task %d", req.Task)
	}
	if err != nil {
		return Prompt{}, err
	}
	return Prompt{System: system, User: user}, nil
}

type systemData struct {
	Persona  string
	Gender   string
	Age      int
	Height   string
	Weight   string
	Chest    string
	Waist    string
	Hips     string
	Bicep    string
	Level    string
	Goal     string
	Location string
	Workouts string
	Injuries string
}

func profileData(p *database.Profile) systemData {
	persona := MalePersona
	if p.Gender == fitness.GenderFemale {
		persona = FemalePersona
	}
	injuries := "нет"
	if p.Injuries.Valid {
		injuries = p.Injuries.String
	}
	m := p.Measurements
	return systemData{
		Persona:  persona,
		Gender:   genderNames[p.Gender],
		Age:      p.Age,
		Height:   num(p.HeightCm),
		Weight:   num(p.WeightKg),
		Chest:    num(m.Chest),
		Waist:    num(m.Waist),
		Hips:     num(m.Hips),
		Bicep:    num(m.Bicep),
		Level:    levelNames[p.FitnessLevel],
		Goal:     goalNames[p.Goal],
		Location: locationNames[p.Location],
		Workouts: workoutsLabel(p.WorkoutsPerWeek),
		Injuries: injuries,
	}
}

type nutritionTargets struct {
	BMR, TDEE                     int
	Calories, Protein, Fat, Carbs int
}

func nutritionData(p *database.Profile) nutritionTargets {
	bmr := fitness.BMR(p.Gender, p.WeightKg, p.HeightCm, p.Age)
	tdee := fitness.TDEE(bmr, p.FitnessLevel)
	macros := fitness.CalculateMacros(tdee, p.Gender, p.Goal)
	return nutritionTargets{
		BMR:      int(math.Round(bmr)),
		TDEE:     int(math.Round(tdee)),
		Calories: macros.Calories,
		Protein:  macros.ProteinG,
		Fat:      macros.FatG,
		Carbs:    macros.CarbsG,
	}
}

func workoutsLabel(n int) string {
	if n >= fitness.MaxWorkoutsPerWeek {
		return fmt.Sprintf("%d+", fitness.MaxWorkoutsPerWeek)
	}
	return fmt.Sprint(n)
}

func num(v float64) string {
	return fmt.Sprintf("%g", v)
}

func execute(t *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", t.Name(), err)
	}
	return sb.String(), nil
}
