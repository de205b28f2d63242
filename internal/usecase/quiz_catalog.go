package usecase

import "github.com/RDias-31/presenteperfeito/internal/domain"

var quizQuestions = []domain.Question{
	{
		ID:       domain.FieldAge,
		Question: "Qual é a idade de quem vai receber o presente?",
		Type:     domain.QuestionText,
		Helper:   "Exemplo: 7 anos, 25 anos, 60 anos...",
	},
	{
		ID:       domain.FieldGender,
		Question: "Qual é o género dessa pessoa?",
		Type:     domain.QuestionSingle,
		Options:  []string{"Masculino", "Feminino"},
	},
	{
		ID:       domain.FieldRelationship,
		Question: "Qual é a relação dessa pessoa contigo?",
		Type:     domain.QuestionSingle,
		Options: []string{
			"Pai",
			"Mãe",
			"Namorado",
			"Namorada",
			"Filho/a",
			"Sobrinho/a",
			"Irmão",
			"Irmã",
			"Afilhado/a",
			"Outro membro da família",
			"Amigo/a",
			"Colega de trabalho",
		},
	},
	{
		ID:       domain.FieldBudget,
		Question: "Qual é o orçamento máximo para este presente?",
		Type:     domain.QuestionSingle,
		Options:  []string{"Até 20€", "20€ a 50€", "50€ a 100€", "Mais de 100€"},
	},
	{
		ID:       domain.FieldStyle,
		Question: "Qual é o estilo principal dessa pessoa?",
		Type:     domain.QuestionSingle,
		Options: []string{
			"Mais caseiro/a",
			"Aventureiro/a",
			"Geek / Tecnologia",
			"Artístico/a",
			"Vaidoso/a (moda/beleza)",
			"Difícil de definir",
		},
	},
	{
		ID:       domain.FieldHobbies,
		Question: "Quais são os hobbies ou interesses principais?",
		Type:     domain.QuestionText,
		Helper:   "Exemplo: futebol, carros, leitura, gaming, ginásio...",
	},
	{
		ID:       domain.FieldPreference,
		Question: "Ela prefere mais experiências ou objetos?",
		Type:     domain.QuestionSingle,
		Options: []string{
			"Experiências (viagens, jantares, escapadinhas)",
			"Objetos (roupa, gadgets, decoração)",
			"Um mix dos dois",
			"Não sei bem",
		},
	},
	{
		ID:       domain.FieldGiftType,
		Question: "Queres algo mais útil, emocional ou divertido?",
		Type:     domain.QuestionSingle,
		Options: []string{
			"Útil (vai mesmo usar no dia a dia)",
			"Emocional (memórias, simbolismo)",
			"Divertido (algo para rir e criar momentos)",
			"Surpreende-me, pode ser qualquer um",
		},
	},
	{
		ID:       domain.FieldNotes,
		Question: "Há alguma observação especial que devamos ter em conta?",
		Type:     domain.QuestionText,
		Helper:   "Exemplo: não bebe álcool, é vegano, alergias, não gosta de roupa, adora viagens, etc.",
	},
}

// QuizQuestions returns a copy of the quiz, one question per answer key
func QuizQuestions() []domain.Question {
	out := make([]domain.Question, len(quizQuestions))
	for i, q := range quizQuestions {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}
