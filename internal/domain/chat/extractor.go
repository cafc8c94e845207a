package chat

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ExtractionResult es el resultado de buscar un comando embebido en la
// respuesta del asistente. Draft == nil significa "sin acción": el texto
// limpio es todo lo que hay.
type ExtractionResult struct {
	DisplayText string
	Draft       *Draft
}

// La respuesta del asistente es texto libre sin formato garantizado: un
// solo regex es frágil ante variaciones mínimas de espacios o saltos de
// línea, así que los patrones van de estricto a permisivo y se prueban
// en orden. Un match que no parsea no es fatal: cae al siguiente.
var draftPatterns = []*regexp.Regexp{
	// compacto, una sola línea
	regexp.MustCompile(`\{"action"\s*:\s*"add_medication"\s*,\s*"medication"\s*:\s*\{[^{}]*\}\s*\}`),
	// multilínea
	regexp.MustCompile(`(?s)\{\s*"action"\s*:\s*"add_medication"\s*,\s*"medication"\s*:\s*\{.*?\}\s*\}`),
	// tolerante: cualquier objeto con action y medication en algún orden
	regexp.MustCompile(`(?s)\{[^{}]*"action"[^{}]*"medication"\s*:\s*\{[^{}]*\}[^{}]*\}`),
}

var (
	fenceRe    = regexp.MustCompile("(?s)```[a-zA-Z]*\\n?.*?```")
	residualRe = regexp.MustCompile(`\{\s*"action"[^\n]*`)
	blankRe    = regexp.MustCompile(`\n{3,}`)
)

const fillerText = "Is there anything else you'd like to know?"

type commandEnvelope struct {
	Action     string `json:"action"`
	Medication Draft  `json:"medication"`
}

// Extract busca un comando {"action":"add_medication","medication":{...}}
// embebido en rawText. Si lo encuentra devuelve el draft más un
// acknowledgment corto (en vez de hacer eco del texto crudo del
// asistente); si no, devuelve el texto limpio de restos de JSON. Nunca
// falla: cualquier error de parseo degrada al siguiente patrón o al
// fallback de texto plano.
func Extract(rawText string) ExtractionResult {
	for _, re := range draftPatterns {
		candidate := re.FindString(rawText)
		if candidate == "" {
			continue
		}

		var env commandEnvelope
		if err := json.Unmarshal([]byte(candidate), &env); err != nil {
			continue
		}
		if env.Action != "add_medication" {
			continue
		}
		if strings.TrimSpace(env.Medication.Name) == "" {
			continue
		}

		d := env.Medication
		d.Name = strings.TrimSpace(d.Name)
		return ExtractionResult{
			DisplayText: fmt.Sprintf("I'll help you add %s to your list. Review the details and confirm to save it.", d.Name),
			Draft:       &d,
		}
	}

	return ExtractionResult{DisplayText: cleanDisplayText(rawText)}
}

// cleanDisplayText deja el texto presentable: sin bloques de código, sin
// objetos JSON balanceados, sin fragmentos {"action":... residuales y
// sin líneas en blanco repetidas. Si queda casi nada, usa el filler
// genérico.
func cleanDisplayText(raw string) string {
	out := fenceRe.ReplaceAllString(raw, "")
	out = stripJSONObjects(out)
	out = residualRe.ReplaceAllString(out, "")
	out = blankRe.ReplaceAllString(out, "\n\n")
	out = strings.TrimSpace(out)

	if len(out) < 3 {
		return fillerText
	}
	return out
}

// stripJSONObjects remueve substrings balanceados {...} que parecen JSON
// (tienen alguna key "x":). Los bloques sin cierre se quedan: de esos se
// encarga residualRe.
func stripJSONObjects(s string) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		if s[i] != '{' {
			b.WriteByte(s[i])
			i++
			continue
		}

		end, ok := findBalanced(s, i)
		if !ok {
			b.WriteByte(s[i])
			i++
			continue
		}

		block := s[i : end+1]
		if !looksLikeJSON(block) {
			b.WriteString(block)
		}
		i = end + 1
	}
	return b.String()
}

// findBalanced devuelve el índice de la llave que cierra el bloque que
// abre en start, respetando strings con comillas.
func findBalanced(s string, start int) (int, bool) {
	depth := 0
	inString := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			if c == '\\' {
				i++
				continue
			}
			if c == '"' {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

var jsonKeyRe = regexp.MustCompile(`"\w+"\s*:`)

func looksLikeJSON(block string) bool {
	return jsonKeyRe.MatchString(block)
}
