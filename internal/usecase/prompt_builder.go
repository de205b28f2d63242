package usecase

import (
	"fmt"
	"strings"

	"github.com/RDias-31/presenteperfeito/internal/domain"
)

// NotProvided replaces every answer the user left empty
const NotProvided = "não indicado"

// Promotional purchase option attached to the personalized suggestion
const (
	PromoOptionName = "Personalizaaki (Instagram)"
	PromoOptionURL  = "https://instagram.com/personalizaaki"
)

// SuggestionsKey is the single top-level key of the expected model output
const SuggestionsKey = "suggestions"

// systemPrompt is sent unchanged with every request.
var systemPrompt = `
Tu és um especialista em presentes de Natal e presentes em geral.
Recebes a descrição de uma pessoa que vai receber um presente e devolves APENAS um objeto JSON com sugestões de presentes.

Regras:
- Cria entre 5 e 10 sugestões.
- Cada sugestão tem obrigatoriamente:
  - "title": nome curto do presente.
  - "category": categoria geral (ex: "emocional", "útil", "experiência", "divertido", "personalizado", "misto").
  - "priceRange": intervalo de preço em texto (ex: "até 20€", "20-50€", "50-100€", "100€+").
  - "rationale": 2 a 3 frases simples e amigáveis a explicar porque é que o presente faz sentido para esta pessoa.
  - "purchaseOptions": lista de 1 a 3 locais onde se pode comprar este tipo de presente.

Sobre "purchaseOptions":
- Mistura grandes superfícies (Amazon.es, Fnac, Worten, Decathlon, etc.) com lojas pequenas, mercados locais e lojas independentes online.
- Cada sugestão inclui pelo menos UMA opção que não seja grande superfície (ex: "loja local de decoração", "mercearia gourmet local", "loja de artesanato da tua cidade").
- Nunca uses mais do que UMA grande superfície por sugestão.
- Cada opção tem "name" e, se houver link, "searchUrl".
- Em "searchUrl" usa SEMPRE links de PESQUISA e nunca de um produto específico, por exemplo:
  - "https://www.amazon.es/s?k=colar+personalizado"
  - "https://www.fnac.pt/SearchResult/ResultList.aspx?Search=experiencia+spa"

Sobre presentes personalizados:
- Quando o perfil o permitir (nome, data especial, fotografia, gravação), exatamente UMA das sugestões é claramente um presente personalizado.
- Nessa sugestão, "purchaseOptions" inclui SEMPRE a entrada:
  { "name": "` + PromoOptionName + `", "searchUrl": "` + PromoOptionURL + `" }

Formato da resposta (JSON válido, sem markdown, sem comentários, sem texto fora do JSON):
{
  "` + SuggestionsKey + `": [
    {
      "title": "...",
      "category": "...",
      "priceRange": "...",
      "rationale": "...",
      "purchaseOptions": [
        { "name": "...", "searchUrl": "https://..." },
        { "name": "..." }
      ]
    }
  ]
}

Nunca indiques preços exatos, apenas intervalos (ex: "20-50€").
`

// SystemPrompt returns the constant instruction block
func SystemPrompt() string {
	return systemPrompt
}

// BuildDescription renders the answers as one "Label: value" line per quiz field,
// in the fixed field order. Missing or blank answers become NotProvided.
// Keys outside the quiz fields are ignored.
func BuildDescription(answers domain.QuizAnswers) string {
	var b strings.Builder
	for _, field := range domain.QuizFields {
		value := strings.TrimSpace(answers[field.Key])
		if value == "" {
			value = NotProvided
		}
		fmt.Fprintf(&b, "%s: %s\n", field.Label, value)
	}
	return b.String()
}

// BuildUserPrompt wraps the recipient description into the per-call user message
func BuildUserPrompt(answers domain.QuizAnswers) string {
	return fmt.Sprintf(`Pessoa que vai receber o presente (descrição vinda de um quiz):

%s
Agora devolve APENAS o JSON no formato pedido, com entre 5 e 10 sugestões.
`, BuildDescription(answers))
}
