package inference

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// CombineElementsSystemPrompt instructs the model how to combine two elements.
const CombineElementsSystemPrompt = `You are creating new elements for an infinite craft game. When given two elements, combine them into one logical new element.

OUTPUT
Respond with ONLY a JSON object in this exact format:
{"element": "<name in the requested language>", "en_text": "<the same name in English>", "emoji": "<exactly one emoji>"}
No text outside the JSON. No Markdown.

RULES
- "element" is written in the requested language. "en_text" is always English.
- The name is a single word or a short phrase of 2-3 words at most.
- The result is a concrete THING, OBJECT, MATERIAL or ENTITY: something you could hold, see, or keep in a video game inventory.
- Avoid abstract processes, actions or states ("construction", "boiling", "dirty").
- Never concatenate the inputs ("mudwater", "firewind").
- "emoji" is exactly one emoji that depicts the result.

SAME ELEMENT TWICE
- Never escalate with intensifiers: "Super Fire", "Mega Water", "Big Stone", "Double Tree" are all wrong.
- Think about what a larger amount of the thing becomes: Water + Water = Ocean, Tree + Tree = Forest, Plant + Plant = Tree.

COMBINATION LOGIC
1. Function: what would you build or create using both elements?
2. Physical reaction: what happens when they interact naturally?
3. Transformation: what do they become when processed together?
Focus on the end product, not the process.

GOOD
- Water + Fire = Steam
- Brick + Wood = House
- Metal + Stone = Sword
- Air + Water = Cloud

BAD
- Brick + Wood = Construction (a process, not a thing)
- Water + Fire = Heating (an action)
- Fire + Fire = Super Fire (escalation)`

type combineExample struct {
	request CombineElementsRequest
	answer  CombineElementsAnswer
}

// few-shot pairs sent before the actual request
var combineElementsExamples = []combineExample{
	{
		request: CombineElementsRequest{Element1: "fire", Element2: "water", LanguageCode: "en-US"},
		answer:  CombineElementsAnswer{Element: "Steam", EnText: "Steam", Emoji: "💨"},
	},
	{
		request: CombineElementsRequest{Element1: "tree", Element2: "tree", LanguageCode: "en-US"},
		answer:  CombineElementsAnswer{Element: "Forest", EnText: "Forest", Emoji: "🌲"},
	},
	{
		request: CombineElementsRequest{Element1: "brick", Element2: "wood", LanguageCode: "es-ES"},
		answer:  CombineElementsAnswer{Element: "Casa", EnText: "House", Emoji: "🏠"},
	},
	{
		request: CombineElementsRequest{Element1: "metal", Element2: "stone", LanguageCode: "ja-JP"},
		answer:  CombineElementsAnswer{Element: "剣", EnText: "Sword", Emoji: "🗡️"},
	},
}

// CombineElementsUserMessage renders the user turn for one request.
func CombineElementsUserMessage(params CombineElementsRequest) string {
	return fmt.Sprintf("Combine these two elements: %s + %s\nLanguage: %s (%s)",
		params.Element1, params.Element2, LanguageName(params.LanguageCode), params.LanguageCode)
}

// LanguageName returns the English name of the language of a BCP 47 code,
// or the code itself when it cannot be parsed.
func LanguageName(languageCode string) string {
	tag, err := language.Parse(languageCode)
	if err != nil {
		return languageCode
	}
	base, _ := tag.Base()
	if name := display.English.Languages().Name(base); name != "" {
		return name
	}
	return languageCode
}

// CombineElementsExample is a few-shot user/assistant message pair.
type CombineElementsExample struct {
	UserMessage      string
	AssistantMessage CombineElementsAnswer
}

func CombineElementsExamples() []CombineElementsExample {
	examples := make([]CombineElementsExample, 0, len(combineElementsExamples))
	for _, example := range combineElementsExamples {
		examples = append(examples, CombineElementsExample{
			UserMessage:      CombineElementsUserMessage(example.request),
			AssistantMessage: example.answer,
		})
	}
	return examples
}
