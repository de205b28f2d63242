package domain

// Quiz answer keys, as sent by the web client
const (
	FieldAge          = "idade"
	FieldGender       = "genero"
	FieldRelationship = "relacao"
	FieldBudget       = "orcamento"
	FieldStyle        = "estilo"
	FieldHobbies      = "hobbies"
	FieldPreference   = "prefere"
	FieldGiftType     = "tipo_presente"
	FieldNotes        = "observacoes"
)

// QuizAnswers maps quiz field keys to the user's short free-text answers.
// Every field is optional.
type QuizAnswers map[string]string

// QuizField pairs an answer key with the label used when describing the recipient
type QuizField struct {
	Key   string
	Label string
}

// QuizFields is the fixed, ordered set of fields rendered into every prompt
var QuizFields = []QuizField{
	{Key: FieldAge, Label: "Idade"},
	{Key: FieldGender, Label: "Género"},
	{Key: FieldRelationship, Label: "Relação"},
	{Key: FieldBudget, Label: "Orçamento"},
	{Key: FieldStyle, Label: "Estilo"},
	{Key: FieldHobbies, Label: "Hobbies / interesses"},
	{Key: FieldPreference, Label: "Prefere"},
	{Key: FieldGiftType, Label: "Tipo de presente desejado"},
	{Key: FieldNotes, Label: "Observações especiais"},
}

// Question is one step of the quiz shown to the user
type Question struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Type     string   `json:"type"` // "single" or "text"
	Options  []string `json:"options,omitempty"`
	Helper   string   `json:"helper,omitempty"`
}

// Question types
const (
	QuestionSingle = "single"
	QuestionText   = "text"
)
